package service

import (
	"Inkwell/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two users: one writes and publishes, the other follows, reads, likes and
// comments; the writer's dashboard then reflects all of it.
func TestWriterReaderScenario(t *testing.T) {
	e := newTestEnv(t)
	writer, err := e.users.EnsureUser(e.ctx, &types.Identity{TokenIdentifier: "w", Name: "Writer", Email: "writer@example.com"})
	require.NoError(t, err)
	reader, err := e.users.EnsureUser(e.ctx, &types.Identity{TokenIdentifier: "r", Name: "Reader", Email: "reader@example.com"})
	require.NoError(t, err)

	archive := e.livePost(t, writer.ID, "Archive")
	e.clk.Advance(10 * time.Minute)

	draft, err := e.posts.CreatePost(e.ctx, writer.ID, newPostReq("Launch"))
	require.NoError(t, err)
	_, err = e.scheduler.Schedule(e.ctx, writer.ID, draft.ID, e.clk.Now().Add(time.Hour))
	require.NoError(t, err)

	following, err := e.follow.ToggleFollow(e.ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	require.True(t, following)

	page, err := e.feed.GetFeed(e.ctx, reader.ID, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1, "scheduled posts stay out of the feed")
	assert.Equal(t, archive.ID, page.Posts[0].ID)

	trending, err := e.feed.GetTrendingPosts(e.ctx, 5)
	require.NoError(t, err)
	require.Len(t, trending, 1, "scheduled posts stay out of trending")
	assert.Equal(t, archive.ID, trending[0].ID)

	e.clk.Advance(time.Hour)
	page, err = e.feed.GetFeed(e.ctx, reader.ID, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "Launch", page.Posts[0].Title)
	assert.Equal(t, "writer", page.Posts[0].Author.Username)
	assert.Equal(t, archive.ID, page.Posts[1].ID)

	require.NoError(t, e.counter.RecordView(e.ctx, reader.ID, draft.ID))
	liked, err := e.counter.ToggleLike(e.ctx, reader.ID, draft.ID)
	require.NoError(t, err)
	require.True(t, liked)
	comment, err := e.counter.RecordComment(e.ctx, draft.ID, reader.ID, "Congrats!")
	require.NoError(t, err)
	_, err = e.counter.ModerateComment(e.ctx, writer.ID, comment.ID, "approved")
	require.NoError(t, err)

	stats, err := e.analytics.GetAnalytics(e.ctx, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.Analytics{
		TotalViews: 1, TotalLikes: 1, TotalComments: 1, TotalFollowers: 1,
		ViewsGrowth: 100, LikesGrowth: 100, CommentsGrowth: 100, FollowersGrowth: 100,
	}, stats)

	profile, err := e.users.GetProfile(e.ctx, writer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.EqualValues(t, 2, profile.PostsCount)

	// the fresher, better liked post outranks the older one
	trending, err = e.feed.GetTrendingPosts(e.ctx, 5)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, draft.ID, trending[0].ID)
	assert.EqualValues(t, 1, trending[0].LikeCount)
	assert.EqualValues(t, 1, trending[0].CommentCount)
	assert.Equal(t, archive.ID, trending[1].ID)
	e.requireConsistent(t)
}
