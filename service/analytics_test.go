package service

import (
	"Inkwell/types"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		recent, total int64
		want          float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{10, 10, 100},
		{0, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Growth(tt.recent, tt.total), "growth(%d, %d)", tt.recent, tt.total)
	}
}

func TestGetDailyViewsShape(t *testing.T) {
	e := newTestEnv(t)
	author, other := e.user(t, "author"), e.user(t, "other")

	empty, err := e.analytics.GetDailyViews(e.ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, empty, 30)

	p1 := e.livePost(t, author.ID, "one")
	p2 := e.livePost(t, author.ID, "two")
	foreign := e.livePost(t, other.ID, "foreign")
	require.NoError(t, e.counter.RecordView(e.ctx, other.ID, p1.ID))
	require.NoError(t, e.counter.RecordView(e.ctx, other.ID, p2.ID))
	require.NoError(t, e.counter.RecordView(e.ctx, other.ID, foreign.ID))
	e.clk.Advance(24 * time.Hour)
	require.NoError(t, e.counter.RecordView(e.ctx, other.ID, p2.ID))

	days, err := e.analytics.GetDailyViews(e.ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, days, 30)
	assert.Equal(t, "2024-02-16", days[0].Date)
	last := days[29]
	assert.Equal(t, "2024-03-16", last.Date)
	assert.Equal(t, "Sat", last.Day)
	assert.Equal(t, "Mar 16", last.FullDate)
	assert.EqualValues(t, 1, last.Views)
	assert.EqualValues(t, 2, days[28].Views, "views merge across the author's posts")

	var total int64
	for i, d := range days {
		total += d.Views
		if i > 0 {
			assert.Less(t, days[i-1].Date, d.Date)
		}
	}
	assert.EqualValues(t, 3, total)
}

func TestGetAnalytics(t *testing.T) {
	e := newTestEnv(t)
	author, fan := e.user(t, "author"), e.user(t, "fan")
	e.counter.Policy = ConfigCommentPolicy{AutoApprove: true}

	empty, err := e.analytics.GetAnalytics(e.ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.Analytics{}, empty)

	old := e.livePost(t, author.ID, "old")
	require.NoError(t, e.counter.RecordView(e.ctx, fan.ID, old.ID))
	_, err = e.counter.ToggleLike(e.ctx, fan.ID, old.ID)
	require.NoError(t, err)
	_, err = e.follow.ToggleFollow(e.ctx, fan.ID, author.ID)
	require.NoError(t, err)

	e.clk.Advance(40 * 24 * time.Hour)
	fresh := e.livePost(t, author.ID, "fresh")
	require.NoError(t, e.counter.RecordView(e.ctx, fan.ID, fresh.ID))
	_, err = e.counter.RecordComment(e.ctx, fresh.ID, fan.ID, "hi")
	require.NoError(t, err)

	got, err := e.analytics.GetAnalytics(e.ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.TotalViews)
	assert.EqualValues(t, 1, got.TotalLikes)
	assert.EqualValues(t, 1, got.TotalComments)
	assert.EqualValues(t, 1, got.TotalFollowers)
	assert.Equal(t, 50.0, got.ViewsGrowth)
	assert.Equal(t, 0.0, got.LikesGrowth)
	assert.Equal(t, 100.0, got.CommentsGrowth)
	assert.Equal(t, 0.0, got.FollowersGrowth)
}

// recordConnPools notes the connection every query and row scan runs on.
func recordConnPools(t *testing.T, db *gorm.DB) *[]gorm.ConnPool {
	t.Helper()
	name := "test:record_pool:" + t.Name()
	var pools []gorm.ConnPool
	record := func(tx *gorm.DB) {
		pools = append(pools, tx.Statement.ConnPool)
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register(name, record))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register(name, record))
	t.Cleanup(func() {
		_ = db.Callback().Query().Remove(name)
		_ = db.Callback().Row().Remove(name)
	})
	return &pools
}

func TestDashboardReadsShareOneTransaction(t *testing.T) {
	e := newTestEnv(t)
	author, fan := e.user(t, "author"), e.user(t, "fan")
	post := e.livePost(t, author.ID, "story")
	_, err := e.counter.ToggleLike(e.ctx, fan.ID, post.ID)
	require.NoError(t, err)
	_, err = e.follow.ToggleFollow(e.ctx, fan.ID, author.ID)
	require.NoError(t, err)

	calls := map[string]func() error{
		"analytics": func() error {
			got, err := e.analytics.GetAnalytics(e.ctx, author.ID)
			if err == nil {
				assert.LessOrEqual(t, got.LikesGrowth, 100.0)
			}
			return err
		},
		"daily views": func() error {
			_, err := e.analytics.GetDailyViews(e.ctx, author.ID)
			return err
		},
		"activity": func() error {
			_, err := e.analytics.GetRecentActivity(e.ctx, author.ID, 0)
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			pools := recordConnPools(t, e.db)
			require.NoError(t, call())

			require.NotEmpty(t, *pools)
			first, ok := (*pools)[0].(*sql.Tx)
			require.True(t, ok, "reads run inside a transaction")
			for _, p := range *pools {
				assert.Same(t, first, p)
			}
		})
	}
}

func TestGetRecentActivity(t *testing.T) {
	e := newTestEnv(t)
	author, fan, critic := e.user(t, "author"), e.user(t, "fan"), e.user(t, "critic")
	post := e.livePost(t, author.ID, "story")
	e.counter.Policy = ConfigCommentPolicy{AutoApprove: true}

	e.clk.Advance(time.Minute)
	_, err := e.counter.ToggleLike(e.ctx, fan.ID, post.ID)
	require.NoError(t, err)
	e.clk.Advance(time.Minute)
	_, err = e.follow.ToggleFollow(e.ctx, critic.ID, author.ID)
	require.NoError(t, err)
	e.clk.Advance(time.Minute)
	_, err = e.counter.RecordComment(e.ctx, post.ID, critic.ID, "hmm")
	require.NoError(t, err)

	e.counter.Policy = ConfigCommentPolicy{}
	e.clk.Advance(time.Minute)
	_, err = e.counter.RecordComment(e.ctx, post.ID, fan.ID, "pending, not shown")
	require.NoError(t, err)

	acts, err := e.analytics.GetRecentActivity(e.ctx, author.ID, 0)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	assert.Equal(t, types.ActivityComment, acts[0].Type)
	assert.Equal(t, "critic", acts[0].User)
	assert.Equal(t, "story", acts[0].Post)
	assert.Equal(t, types.ActivityFollow, acts[1].Type)
	assert.Equal(t, types.ActivityLike, acts[2].Type)
	assert.Equal(t, "fan", acts[2].User)

	limited, err := e.analytics.GetRecentActivity(e.ctx, author.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetPostsWithAnalytics(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	for i := 0; i < 7; i++ {
		e.livePost(t, author.ID, "p")
		e.clk.Advance(time.Minute)
	}
	posts, err := e.analytics.GetPostsWithAnalytics(e.ctx, author.ID, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}
