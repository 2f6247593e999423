package service

import (
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledPostBecomesVisibleWithoutWrites(t *testing.T) {
	e := newTestEnv(t)
	author, reader := e.user(t, "author"), e.user(t, "reader")
	p, err := e.posts.CreatePost(e.ctx, author.ID, newPostReq("later"))
	require.NoError(t, err)

	when := e.clk.Now().Add(2 * time.Hour)
	scheduled, err := e.scheduler.Schedule(e.ctx, author.ID, p.ID, when)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, scheduled.Status)
	require.NotNil(t, scheduled.PublishedAt)
	assert.True(t, scheduled.PublishedAt.Equal(when), "published_at is set to the release time")
	assert.EqualValues(t, 1, e.reloadUser(t, author.ID).PostsCount)

	_, err = e.posts.GetPost(e.ctx, reader.ID, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	own, err := e.posts.GetPost(e.ctx, author.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PostStateScheduled, own.State)

	e.clk.Advance(2*time.Hour + time.Millisecond)
	got, err := e.posts.GetPost(e.ctx, reader.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PostStateLive, got.State)
}

func TestScheduleRejectsPastTimes(t *testing.T) {
	e := newTestEnv(t)
	author := e.user(t, "author")
	p, err := e.posts.CreatePost(e.ctx, author.ID, newPostReq("late"))
	require.NoError(t, err)

	_, err = e.scheduler.Schedule(e.ctx, author.ID, p.ID, e.clk.Now())
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	_, err = e.scheduler.Schedule(e.ctx, author.ID, p.ID, e.clk.Now().Add(-time.Minute))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Equal(t, models.PostStatusDraft, e.reloadPost(t, p.ID).Status)
}

func TestTransitionsTrackPostsCount(t *testing.T) {
	e := newTestEnv(t)
	author, other := e.user(t, "author"), e.user(t, "other")
	p, err := e.posts.CreatePost(e.ctx, author.ID, newPostReq("cycle"))
	require.NoError(t, err)

	_, err = e.scheduler.PublishNow(e.ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "non-authors cannot see the post exists")

	published, err := e.scheduler.PublishNow(e.ctx, author.ID, p.ID)
	require.NoError(t, err)
	assert.Nil(t, published.ScheduledFor)
	assert.EqualValues(t, 1, e.reloadUser(t, author.ID).PostsCount)

	// rescheduling a published post does not count it twice
	_, err = e.scheduler.Schedule(e.ctx, author.ID, p.ID, e.clk.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, e.reloadUser(t, author.ID).PostsCount)

	draft, err := e.scheduler.Unpublish(e.ctx, author.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)
	assert.Nil(t, draft.ScheduledFor)
	assert.EqualValues(t, 0, e.reloadUser(t, author.ID).PostsCount)

	_, err = e.scheduler.Unpublish(e.ctx, author.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, e.reloadUser(t, author.ID).PostsCount)
	e.requireConsistent(t)
}

func TestRepublishingBumpsPublishedAt(t *testing.T) {
	e := newTestEnv(t)
	author, reader := e.user(t, "author"), e.user(t, "reader")
	_, err := e.follow.ToggleFollow(e.ctx, reader.ID, author.ID)
	require.NoError(t, err)
	first := e.livePost(t, author.ID, "first")
	e.clk.Advance(time.Hour)
	second := e.livePost(t, author.ID, "second")

	e.clk.Advance(time.Hour)
	bumped, err := e.scheduler.PublishNow(e.ctx, author.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, bumped.PublishedAt)
	assert.True(t, bumped.PublishedAt.Equal(e.clk.Now().UTC().Truncate(time.Millisecond)))
	assert.EqualValues(t, 2, e.reloadUser(t, author.ID).PostsCount)

	page, err := e.feed.GetFeed(e.ctx, reader.ID, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, first.ID, page.Posts[0].ID)
	assert.Equal(t, second.ID, page.Posts[1].ID)
	e.requireConsistent(t)
}
