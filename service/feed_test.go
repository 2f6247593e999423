package service

import (
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeedPagesInRecencyOrder(t *testing.T) {
	e := newTestEnv(t)
	viewer, a, b, stranger := e.user(t, "viewer"), e.user(t, "alice"), e.user(t, "bob"), e.user(t, "stranger")
	for _, u := range []*models.User{a, b} {
		_, err := e.follow.ToggleFollow(e.ctx, viewer.ID, u.ID)
		require.NoError(t, err)
	}

	var want []uint64
	for i, author := range []*models.User{a, b, a, b, a} {
		p := e.livePost(t, author.ID, "post")
		want = append([]uint64{p.ID}, want...)
		if i%2 == 0 {
			e.clk.Advance(time.Minute)
		}
	}
	e.livePost(t, stranger.ID, "not followed")
	draft, err := e.posts.CreatePost(e.ctx, a.ID, newPostReq("draft"))
	require.NoError(t, err)
	_, err = e.scheduler.Schedule(e.ctx, a.ID, draft.ID, e.clk.Now().Add(time.Hour))
	require.NoError(t, err)

	var got []uint64
	cursor := ""
	for pages := 0; pages < 5; pages++ {
		page, err := e.feed.GetFeed(e.ctx, viewer.ID, 2, cursor)
		require.NoError(t, err)
		for _, p := range page.Posts {
			got = append(got, p.ID)
			require.NotNil(t, p.Author)
		}
		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}
		require.NotEmpty(t, page.NextCursor)
		cursor = page.NextCursor
	}
	assert.Equal(t, want, got)
}

func TestGetFeedEdgeCases(t *testing.T) {
	e := newTestEnv(t)
	viewer, a := e.user(t, "viewer"), e.user(t, "alice")
	e.livePost(t, a.ID, "hello")

	page, err := e.feed.GetFeed(e.ctx, viewer.ID, 0, "")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)

	_, err = e.feed.GetFeed(e.ctx, viewer.ID, 10, "not-a-cursor")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = e.follow.ToggleFollow(e.ctx, viewer.ID, a.ID)
	require.NoError(t, err)
	page, err = e.feed.GetFeed(e.ctx, viewer.ID, 500, "")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.False(t, page.HasMore)
}

func TestGetTrendingPosts(t *testing.T) {
	e := newTestEnv(t)
	author, fan1, fan2 := e.user(t, "author"), e.user(t, "fan1"), e.user(t, "fan2")

	old := e.livePost(t, author.ID, "old")
	e.clk.Advance(8 * 24 * time.Hour)
	quiet := e.livePost(t, author.ID, "quiet")
	popular := e.livePost(t, author.ID, "popular")
	for _, fan := range []*models.User{fan1, fan2} {
		_, err := e.counter.ToggleLike(e.ctx, fan.ID, popular.ID)
		require.NoError(t, err)
	}
	_, err := e.counter.ToggleLike(e.ctx, fan1.ID, old.ID)
	require.NoError(t, err)

	trending, err := e.feed.GetTrendingPosts(e.ctx, 10)
	require.NoError(t, err)
	require.Len(t, trending, 2, "posts outside the window are excluded")
	assert.Equal(t, popular.ID, trending[0].ID)
	assert.Equal(t, quiet.ID, trending[1].ID)

	again, err := e.feed.GetTrendingPosts(e.ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, trending, again)

	top, err := e.feed.GetTrendingPosts(e.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestRankTrendingTieBreaks(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		t := now.Add(-time.Duration(h) * time.Hour)
		return &t
	}
	posts := []*models.Post{
		{ID: 1, PublishedAt: at(5)},
		{ID: 3, PublishedAt: at(5)},
		{ID: 2, PublishedAt: at(5)},
		{ID: 4, PublishedAt: at(1), LikeCount: 1},
	}
	constant := scorerFunc(func(*models.Post, time.Time) float64 { return 1 })
	ranked := RankTrending(posts, constant, now, 10)
	assert.Equal(t, []uint64{4, 3, 2, 1}, postIDs(ranked), "equal scores: newest then highest id")

	ranked = RankTrending(posts, GravityScorer{LikeWeight: 3, Gravity: 1.5}, now, 2)
	assert.Equal(t, []uint64{4, 3}, postIDs(ranked))
}

func TestGravityScorer(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s := GravityScorer{ViewWeight: 0.1, LikeWeight: 3, CommentWeight: 5, Gravity: 1.5}
	fresh := now.Add(-time.Hour)
	stale := now.Add(-48 * time.Hour)

	base := &models.Post{PublishedAt: &fresh}
	liked := &models.Post{PublishedAt: &fresh, LikeCount: 1}
	commented := &models.Post{PublishedAt: &fresh, CommentCount: 1}
	older := &models.Post{PublishedAt: &stale, LikeCount: 1}

	assert.Greater(t, s.Score(liked, now), s.Score(base, now))
	assert.Greater(t, s.Score(commented, now), s.Score(liked, now))
	assert.Greater(t, s.Score(liked, now), s.Score(older, now))
	assert.Equal(t, s.Score(liked, now), s.Score(liked, now))

	future := now.Add(time.Hour)
	assert.InDelta(t, 1/2.8284271247, s.Score(&models.Post{PublishedAt: &future}, now), 1e-6)
}

type scorerFunc func(*models.Post, time.Time) float64

func (f scorerFunc) Score(p *models.Post, now time.Time) float64 { return f(p, now) }

func postIDs(posts []*models.Post) []uint64 {
	ids := make([]uint64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
