package service

import (
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/database"
	"context"
	"time"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

var _ ISchedulerService = (*SchedulerService)(nil)

// ISchedulerService moves posts between draft, scheduled and live. A
// scheduled post turns live purely by the clock passing scheduled_for.
type ISchedulerService interface {
	PublishNow(ctx context.Context, actorID, postID uint64) (*models.Post, error)
	Schedule(ctx context.Context, actorID, postID uint64, when time.Time) (*models.Post, error)
	Unpublish(ctx context.Context, actorID, postID uint64) (*models.Post, error)
}

type SchedulerService struct {
	DB      *gorm.DB
	PostDAO *dao.PostDAO
	UserDAO *dao.Users
	Clock   clock.Clock
}

func (s *SchedulerService) PublishNow(ctx context.Context, actorID, postID uint64) (*models.Post, error) {
	return s.transition(ctx, "scheduler.publish", actorID, postID, func(now time.Time) (map[string]any, error) {
		return map[string]any{
			"status":        models.PostStatusPublished,
			"scheduled_for": nil,
			"published_at":  now,
		}, nil
	})
}

// Schedule publishes the post with a release time in the future.
// published_at is set to the release time so recency ordering is stable.
func (s *SchedulerService) Schedule(ctx context.Context, actorID, postID uint64, when time.Time) (*models.Post, error) {
	when = when.UTC().Truncate(time.Millisecond)
	return s.transition(ctx, "scheduler.schedule", actorID, postID, func(now time.Time) (map[string]any, error) {
		if !when.After(now) {
			return nil, apperror.InvalidArgument("scheduled_for", "scheduled time must be in the future")
		}
		return map[string]any{
			"status":        models.PostStatusPublished,
			"scheduled_for": when,
			"published_at":  when,
		}, nil
	})
}

func (s *SchedulerService) Unpublish(ctx context.Context, actorID, postID uint64) (*models.Post, error) {
	return s.transition(ctx, "scheduler.unpublish", actorID, postID, func(time.Time) (map[string]any, error) {
		return map[string]any{
			"status":        models.PostStatusDraft,
			"scheduled_for": nil,
			"published_at":  nil,
		}, nil
	})
}

// transition loads the post, applies the updates built by next and keeps
// the author's posts_count in step with draft/published changes.
func (s *SchedulerService) transition(ctx context.Context, op string, actorID, postID uint64,
	next func(now time.Time) (map[string]any, error)) (*models.Post, error) {
	var result *models.Post
	err := database.Transaction(ctx, s.DB, op, func(tx *gorm.DB) error {
		posts := s.PostDAO.WithTx(tx)
		now := database.Now(s.Clock)

		post, err := posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil || post.AuthorID != actorID {
			return apperror.NotFound("post", postID)
		}

		updates, err := next(now)
		if err != nil {
			return err
		}
		updates["updated_at"] = now
		changed, err := posts.TransitionStatus(ctx, postID, post.Status, updates)
		if err != nil {
			return err
		}
		if !changed {
			return database.ErrStaleRow
		}

		to := updates["status"].(models.PostStatus)
		var delta int64
		switch {
		case post.Status == models.PostStatusDraft && to == models.PostStatusPublished:
			delta = 1
		case post.Status == models.PostStatusPublished && to == models.PostStatusDraft:
			delta = -1
		}
		if delta != 0 {
			if err := s.UserDAO.WithTx(tx).IncrPostsCount(ctx, actorID, delta, now); err != nil {
				return err
			}
		}

		result, err = posts.FindByID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
