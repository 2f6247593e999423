package service

import (
	"Inkwell/config"
	"Inkwell/dao"
	"Inkwell/dao/cache"
	"Inkwell/internal/testutil"
	"Inkwell/models"
	"Inkwell/pkg/cursor"
	"Inkwell/types"
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/juju/clock/testclock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every service the way wire does in production, over an
// in-memory store, a miniredis cache and a simulated clock.
type testEnv struct {
	ctx  context.Context
	db   *gorm.DB
	clk  *testclock.Clock
	conf *config.Config
	mr   *miniredis.Miniredis

	users     *UserService
	follow    *FollowService
	counter   *CounterService
	scheduler *SchedulerService
	posts     *PostService
	suggest   *SuggestionService
	feed      *FeedService
	analytics *AnalyticsService
	reconcile *ReconcileService
	seed      *SeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clk := testutil.NewClock()
	db := testutil.NewDB(t, clk)
	conf := testutil.NewConfig()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	codec, err := cursor.NewCodec(conf.Cursor)
	require.NoError(t, err)

	userDAO := dao.NewUsers(db)
	postDAO := dao.NewPostDAO(db)
	followDAO := dao.NewFollowDAO(db)
	likeDAO := dao.NewLikeDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	statDAO := dao.NewDailyStatDAO(db)

	e := &testEnv{ctx: context.Background(), db: db, clk: clk, conf: conf, mr: mr}
	e.users = &UserService{DB: db, UserDAO: userDAO, Clock: clk}
	e.follow = &FollowService{DB: db, FollowDAO: followDAO, UserDAO: userDAO,
		Cache: cache.NewFollowingCache(rdb, conf), Clock: clk}
	e.counter = &CounterService{DB: db, PostDAO: postDAO, UserDAO: userDAO, LikeDAO: likeDAO,
		CommentDAO: commentDAO, DailyStatDAO: statDAO, Policy: NewCommentPolicy(conf.Feed), Clock: clk}
	e.scheduler = &SchedulerService{DB: db, PostDAO: postDAO, UserDAO: userDAO, Clock: clk}
	e.posts = &PostService{DB: db, PostDAO: postDAO, UserDAO: userDAO, Clock: clk}
	e.suggest = &SuggestionService{UserDAO: userDAO, PostDAO: postDAO, FollowDAO: followDAO,
		Follow: e.follow, Conf: conf.Feed, Clock: clk}
	e.feed = &FeedService{PostDAO: postDAO, UserDAO: userDAO, Follow: e.follow, Suggestions: e.suggest,
		Cursor: codec, Scorer: NewScorer(conf.Feed), Conf: conf.Feed, Clock: clk}
	e.analytics = &AnalyticsService{DB: db, PostDAO: postDAO, LikeDAO: likeDAO, CommentDAO: commentDAO,
		FollowDAO: followDAO, DailyStatDAO: statDAO, Clock: clk}
	e.reconcile = &ReconcileService{DB: db, UserDAO: userDAO, PostDAO: postDAO, FollowDAO: followDAO,
		LikeDAO: likeDAO, CommentDAO: commentDAO, DailyStatDAO: statDAO, Clock: clk}
	e.seed = &SeedService{UserDAO: userDAO, Users: e.users, Follow: e.follow, Posts: e.posts,
		Scheduler: e.scheduler, Counter: e.counter, Clock: clk}
	return e
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, e.clk, name)
}

// livePost creates a post through the services and publishes it now.
func (e *testEnv) livePost(t *testing.T, authorID uint64, title string) *models.Post {
	t.Helper()
	p, err := e.posts.CreatePost(e.ctx, authorID, &types.CreatePostRequest{Title: title, Content: "body"})
	require.NoError(t, err)
	post, err := e.scheduler.PublishNow(e.ctx, authorID, p.ID)
	require.NoError(t, err)
	return post
}

func (e *testEnv) reloadUser(t *testing.T, id uint64) *models.User {
	t.Helper()
	return testutil.Reload[models.User](t, e.db, id)
}

func (e *testEnv) reloadPost(t *testing.T, id uint64) *models.Post {
	t.Helper()
	return testutil.Reload[models.Post](t, e.db, id)
}

// requireConsistent asserts that no counter drifted from its source rows.
func (e *testEnv) requireConsistent(t *testing.T) {
	t.Helper()
	drifts, err := e.reconcile.Check(e.ctx)
	require.NoError(t, err)
	require.Empty(t, drifts)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func newPostReq(title string) *types.CreatePostRequest {
	return &types.CreatePostRequest{Title: title, Content: "body of " + title}
}
