package service

import (
	"Inkwell/pkg/apperror"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowIsAnInvolution(t *testing.T) {
	e := newTestEnv(t)
	a, b := e.user(t, "alice"), e.user(t, "bob")

	following, err := e.follow.ToggleFollow(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.EqualValues(t, 1, e.reloadUser(t, b.ID).FollowersCount)
	assert.EqualValues(t, 1, e.reloadUser(t, a.ID).FollowingCount)

	ok, err := e.follow.IsFollowing(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	following, err = e.follow.ToggleFollow(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.EqualValues(t, 0, e.reloadUser(t, b.ID).FollowersCount)
	assert.EqualValues(t, 0, e.reloadUser(t, a.ID).FollowingCount)

	ok, err = e.follow.IsFollowing(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	e.requireConsistent(t)
}

func TestToggleFollowRejectsSelfAndUnknown(t *testing.T) {
	e := newTestEnv(t)
	a := e.user(t, "alice")

	_, err := e.follow.ToggleFollow(e.ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = e.follow.ToggleFollow(e.ctx, a.ID, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualValues(t, 0, e.reloadUser(t, a.ID).FollowingCount)
}

func TestConcurrentTogglesKeepCountersExact(t *testing.T) {
	e := newTestEnv(t)
	a, b := e.user(t, "alice"), e.user(t, "bob")

	const n = 7
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.follow.ToggleFollow(e.ctx, a.ID, b.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	ok, err := e.follow.IsFollowing(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok, "an odd number of toggles leaves the edge present")
	assert.EqualValues(t, 1, e.reloadUser(t, b.ID).FollowersCount)
	e.requireConsistent(t)
}

func TestListFollowersAndFollowing(t *testing.T) {
	e := newTestEnv(t)
	me, x, y := e.user(t, "me"), e.user(t, "xavier"), e.user(t, "yara")

	_, err := e.follow.ToggleFollow(e.ctx, x.ID, me.ID)
	require.NoError(t, err)
	e.clk.Advance(time.Minute)
	_, err = e.follow.ToggleFollow(e.ctx, y.ID, me.ID)
	require.NoError(t, err)
	e.clk.Advance(time.Minute)
	_, err = e.follow.ToggleFollow(e.ctx, me.ID, x.ID)
	require.NoError(t, err)

	followers, err := e.follow.ListFollowers(e.ctx, me.ID, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, y.ID, followers[0].UserID, "newest edge first")
	assert.False(t, followers[0].FollowsBack)
	assert.Equal(t, x.ID, followers[1].UserID)
	assert.True(t, followers[1].FollowsBack)

	following, err := e.follow.ListFollowing(e.ctx, me.ID, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "xavier", following[0].Username)
	assert.True(t, following[0].FollowsBack)

	limited, err := e.follow.ListFollowers(e.ctx, me.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFollowingIDsCacheIsInvalidatedOnToggle(t *testing.T) {
	e := newTestEnv(t)
	a, b, c := e.user(t, "alice"), e.user(t, "bob"), e.user(t, "carol")

	ids, err := e.follow.FollowingIDs(e.ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.True(t, e.mr.Exists("feed:following:"+itoa(a.ID)))

	_, err = e.follow.ToggleFollow(e.ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, e.mr.Exists("feed:following:"+itoa(a.ID)))

	_, err = e.follow.ToggleFollow(e.ctx, a.ID, c.ID)
	require.NoError(t, err)
	ids, err = e.follow.FollowingIDs(e.ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{b.ID, c.ID}, ids)
}

func TestFollowingCacheIgnoresListLoadedBeforeToggle(t *testing.T) {
	e := newTestEnv(t)
	reader, author := e.user(t, "reader"), e.user(t, "author")
	post := e.livePost(t, author.ID, "hello")

	// a feed request misses the cache and loads the list before the follow commits
	version, err := e.follow.Cache.Version(e.ctx, reader.ID)
	require.NoError(t, err)
	stale, err := e.follow.FollowDAO.FollowingIDs(e.ctx, reader.ID)
	require.NoError(t, err)
	require.Empty(t, stale)

	following, err := e.follow.ToggleFollow(e.ctx, reader.ID, author.ID)
	require.NoError(t, err)
	require.True(t, following)

	stored, err := e.follow.Cache.Set(e.ctx, reader.ID, stale, version)
	require.NoError(t, err)
	assert.False(t, stored)

	page, err := e.feed.GetFeed(e.ctx, reader.ID, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, post.ID, page.Posts[0].ID)
}

func TestFollowingIDsFallsBackWhenRedisIsDown(t *testing.T) {
	e := newTestEnv(t)
	a, b := e.user(t, "alice"), e.user(t, "bob")
	_, err := e.follow.ToggleFollow(e.ctx, a.ID, b.ID)
	require.NoError(t, err)

	e.mr.Close()
	ids, err := e.follow.FollowingIDs(e.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{b.ID}, ids)
}
