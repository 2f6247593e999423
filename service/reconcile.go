package service

import (
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/database"
	"Inkwell/pkg/log"
	"context"
	"sync"

	"github.com/juju/clock"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ IReconcileService = (*ReconcileService)(nil)

// IReconcileService recomputes every cached counter from the edge and event
// tables. Run repairs the drift it finds; Check only reports it.
type IReconcileService interface {
	Check(ctx context.Context) ([]Drift, error)
	Run(ctx context.Context) ([]Drift, error)
}

// Drift is one counter that disagrees with its source rows.
type Drift struct {
	Table  string `json:"table"`
	ID     uint64 `json:"id"`
	Column string `json:"column"`
	Stored int64  `json:"stored"`
	Actual int64  `json:"actual"`
}

const (
	reconcileBatch   = 200
	reconcileWorkers = 8
)

type ReconcileService struct {
	DB           *gorm.DB
	UserDAO      *dao.Users
	PostDAO      *dao.PostDAO
	FollowDAO    *dao.FollowDAO
	LikeDAO      *dao.LikeDAO
	CommentDAO   *dao.CommentDAO
	DailyStatDAO *dao.DailyStatDAO
	Clock        clock.Clock
}

func (s *ReconcileService) Check(ctx context.Context) ([]Drift, error) {
	return s.reconcile(ctx, false)
}

func (s *ReconcileService) Run(ctx context.Context) ([]Drift, error) {
	drifts, err := s.reconcile(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(drifts) > 0 {
		log.L.Warn("counters repaired", zap.Int("drifts", len(drifts)))
	}
	return drifts, nil
}

func (s *ReconcileService) reconcile(ctx context.Context, repair bool) ([]Drift, error) {
	var (
		mu     sync.Mutex
		drifts []Drift
	)
	collect := func(found []Drift) {
		mu.Lock()
		drifts = append(drifts, found...)
		mu.Unlock()
	}

	err := s.forEachBatch(ctx, s.UserDAO.AllIDs, func(ctx context.Context, id uint64) error {
		found, err := s.reconcileUser(ctx, id, repair)
		collect(found)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = s.forEachBatch(ctx, s.PostDAO.AllIDs, func(ctx context.Context, id uint64) error {
		found, err := s.reconcilePost(ctx, id, repair)
		collect(found)
		return err
	})
	if err != nil {
		return nil, err
	}
	return drifts, nil
}

// forEachBatch pages ids in ascending order and fans each page out to a
// bounded worker pool.
func (s *ReconcileService) forEachBatch(ctx context.Context,
	page func(ctx context.Context, afterID uint64, limit int) ([]uint64, error),
	fn func(ctx context.Context, id uint64) error) error {
	var after uint64
	for {
		ids, err := page(ctx, after, reconcileBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(reconcileWorkers)
		for _, id := range ids {
			p.Go(func(ctx context.Context) error {
				return fn(ctx, id)
			})
		}
		if err := p.Wait(); err != nil {
			return err
		}
		after = ids[len(ids)-1]
	}
}

func (s *ReconcileService) reconcileUser(ctx context.Context, userID uint64, repair bool) ([]Drift, error) {
	var drifts []Drift
	err := database.Transaction(ctx, s.DB, "reconcile.user", func(tx *gorm.DB) error {
		drifts = nil
		var user models.User
		// lock the row so toggles wait until the recount is written back
		q := tx.WithContext(ctx).Where("id = ?", userID)
		if repair {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Take(&user).Error; err != nil {
			return err
		}

		follows := s.FollowDAO.WithTx(tx)
		followers, err := follows.GetFollowerCount(ctx, userID)
		if err != nil {
			return err
		}
		following, err := follows.GetFollowingCount(ctx, userID)
		if err != nil {
			return err
		}
		posts, err := s.PostDAO.WithTx(tx).CountPublishedByAuthor(ctx, userID)
		if err != nil {
			return err
		}

		drifts = compare("users", userID, []counterPair{
			{"followers_count", user.FollowersCount, followers},
			{"following_count", user.FollowingCount, following},
			{"posts_count", user.PostsCount, posts},
		})
		if !repair || len(drifts) == 0 {
			return nil
		}
		return s.UserDAO.WithTx(tx).SetColumns(ctx, userID, actualValues(drifts), database.Now(s.Clock))
	})
	return drifts, err
}

func (s *ReconcileService) reconcilePost(ctx context.Context, postID uint64, repair bool) ([]Drift, error) {
	var drifts []Drift
	err := database.Transaction(ctx, s.DB, "reconcile.post", func(tx *gorm.DB) error {
		drifts = nil
		var post models.Post
		q := tx.WithContext(ctx).Where("id = ?", postID)
		if repair {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Take(&post).Error; err != nil {
			return err
		}

		likes, err := s.LikeDAO.WithTx(tx).CountByPost(ctx, postID)
		if err != nil {
			return err
		}
		comments, err := s.CommentDAO.WithTx(tx).CountApproved(ctx, []uint64{postID})
		if err != nil {
			return err
		}
		views, err := s.DailyStatDAO.WithTx(tx).SumAllViews(ctx, postID)
		if err != nil {
			return err
		}

		drifts = compare("posts", postID, []counterPair{
			{"view_count", post.ViewCount, views},
			{"like_count", post.LikeCount, likes},
			{"comment_count", post.CommentCount, comments},
		})
		if !repair || len(drifts) == 0 {
			return nil
		}
		return s.PostDAO.WithTx(tx).SetColumns(ctx, postID, actualValues(drifts), database.Now(s.Clock))
	})
	return drifts, err
}

type counterPair struct {
	column string
	stored int64
	actual int64
}

func compare(table string, id uint64, pairs []counterPair) []Drift {
	var out []Drift
	for _, p := range pairs {
		if p.stored != p.actual {
			out = append(out, Drift{Table: table, ID: id, Column: p.column, Stored: p.stored, Actual: p.actual})
		}
	}
	return out
}

func actualValues(drifts []Drift) map[string]int64 {
	out := make(map[string]int64, len(drifts))
	for _, d := range drifts {
		out[d.Column] = d.Actual
	}
	return out
}
