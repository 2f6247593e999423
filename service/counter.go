package service

import (
	"Inkwell/config"
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/database"
	"Inkwell/pkg/snowflake"
	"Inkwell/types"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

var _ ICounterService = (*CounterService)(nil)

// ICounterService owns every engagement write: each edge or event row and
// the counter it feeds commit together.
type ICounterService interface {
	RecordView(ctx context.Context, viewerID, postID uint64) error
	ToggleLike(ctx context.Context, userID, postID uint64) (bool, error)
	RecordComment(ctx context.Context, postID, authorID uint64, content string) (*models.Comment, error)
	ModerateComment(ctx context.Context, actorID, commentID uint64, status models.CommentStatus) (*models.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uint64) error
	ListComments(ctx context.Context, viewerID, postID uint64, limit int) ([]*types.CommentResponse, error)
}

// CommentPolicy decides the status a new comment starts in.
type CommentPolicy interface {
	InitialStatus(post *models.Post, author *models.User) models.CommentStatus
}

// ConfigCommentPolicy approves everything when AutoApprove is set and
// otherwise only the post author's own comments.
type ConfigCommentPolicy struct {
	AutoApprove bool
}

func (p ConfigCommentPolicy) InitialStatus(post *models.Post, author *models.User) models.CommentStatus {
	if p.AutoApprove || post.AuthorID == author.ID {
		return models.CommentStatusApproved
	}
	return models.CommentStatusPending
}

func NewCommentPolicy(conf *config.Feed) CommentPolicy {
	return ConfigCommentPolicy{AutoApprove: conf.CommentAutoApprove}
}

type CounterService struct {
	DB           *gorm.DB
	PostDAO      *dao.PostDAO
	UserDAO      *dao.Users
	LikeDAO      *dao.LikeDAO
	CommentDAO   *dao.CommentDAO
	DailyStatDAO *dao.DailyStatDAO
	Policy       CommentPolicy
	Clock        clock.Clock
}

const defaultCommentListLimit = 50

// RecordView counts one read of a post the viewer can see. viewerID 0 is an
// anonymous reader, who only sees live posts.
func (s *CounterService) RecordView(ctx context.Context, viewerID, postID uint64) error {
	return database.Transaction(ctx, s.DB, "counter.view", func(tx *gorm.DB) error {
		posts := s.PostDAO.WithTx(tx)
		now := database.Now(s.Clock)
		post, err := posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil || !post.VisibleTo(viewerID, now) {
			return apperror.NotFound("post", postID)
		}
		if err := posts.IncrCounters(ctx, postID, map[string]int64{"view_count": 1}, now); err != nil {
			return err
		}
		return s.DailyStatDAO.WithTx(tx).IncrViews(ctx, postID, models.DayKey(now), 1, now)
	})
}

// ToggleLike 点赞/取消点赞, reporting whether the like now exists.
func (s *CounterService) ToggleLike(ctx context.Context, userID, postID uint64) (bool, error) {
	var liked bool
	err := database.Transaction(ctx, s.DB, "counter.like", func(tx *gorm.DB) error {
		posts := s.PostDAO.WithTx(tx)
		likes := s.LikeDAO.WithTx(tx)
		now := database.Now(s.Clock)

		post, err := posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil || !post.VisibleTo(userID, now) {
			return apperror.NotFound("post", postID)
		}

		removed, err := likes.Delete(ctx, userID, postID)
		if err != nil {
			return err
		}
		if removed {
			liked = false
			return posts.IncrCounters(ctx, postID, map[string]int64{"like_count": -1}, now)
		}

		like := &models.Like{
			ID:        snowflake.GenID(),
			UserID:    userID,
			PostID:    postID,
			CreatedAt: now,
		}
		if err := likes.Create(ctx, like); err != nil {
			return err
		}
		liked = true
		return posts.IncrCounters(ctx, postID, map[string]int64{"like_count": 1}, now)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (s *CounterService) RecordComment(ctx context.Context, postID, authorID uint64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.InvalidArgument("content", "comment must not be empty")
	}
	if utf8.RuneCountInString(content) > types.MaxCommentLength {
		return nil, apperror.InvalidArgument("content", "comment is too long")
	}

	var comment *models.Comment
	err := database.Transaction(ctx, s.DB, "counter.comment", func(tx *gorm.DB) error {
		posts := s.PostDAO.WithTx(tx)
		now := database.Now(s.Clock)

		post, err := posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil || !post.VisibleTo(authorID, now) {
			return apperror.NotFound("post", postID)
		}
		author, err := s.UserDAO.WithTx(tx).FindByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return apperror.Unauthenticated("unknown user")
		}

		id := author.ID
		comment = &models.Comment{
			ID:          snowflake.GenID(),
			PostID:      postID,
			AuthorID:    &id,
			AuthorName:  author.Name,
			AuthorEmail: author.Email,
			Content:     content,
			Status:      s.Policy.InitialStatus(post, author),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.CommentDAO.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		if comment.Status != models.CommentStatusApproved {
			return nil
		}
		return posts.IncrCounters(ctx, postID, map[string]int64{"comment_count": 1}, now)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ModerateComment 审核评论. Only the post author may moderate; anyone else
// sees NotFound.
func (s *CounterService) ModerateComment(ctx context.Context, actorID, commentID uint64, status models.CommentStatus) (*models.Comment, error) {
	if !status.Valid() {
		return nil, apperror.InvalidArgument("status", "unknown comment status")
	}

	var comment *models.Comment
	err := database.Transaction(ctx, s.DB, "counter.moderate", func(tx *gorm.DB) error {
		comments := s.CommentDAO.WithTx(tx)
		posts := s.PostDAO.WithTx(tx)
		now := database.Now(s.Clock)

		c, post, err := s.loadComment(ctx, comments, posts, commentID)
		if err != nil {
			return err
		}
		if post.AuthorID != actorID {
			return apperror.NotFound("comment", commentID)
		}
		comment = c
		if c.Status == status {
			return nil
		}

		changed, err := comments.UpdateStatus(ctx, commentID, c.Status, status, now)
		if err != nil {
			return err
		}
		if !changed {
			return database.ErrStaleRow
		}
		delta := approvalDelta(c.Status, status)
		c.Status = status
		c.UpdatedAt = now
		if delta == 0 {
			return nil
		}
		return posts.IncrCounters(ctx, post.ID, map[string]int64{"comment_count": delta}, now)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is allowed for the post author and the comment author.
func (s *CounterService) DeleteComment(ctx context.Context, actorID, commentID uint64) error {
	return database.Transaction(ctx, s.DB, "counter.delete_comment", func(tx *gorm.DB) error {
		comments := s.CommentDAO.WithTx(tx)
		posts := s.PostDAO.WithTx(tx)

		c, post, err := s.loadComment(ctx, comments, posts, commentID)
		if err != nil {
			return err
		}
		isCommentAuthor := c.AuthorID != nil && *c.AuthorID == actorID
		if post.AuthorID != actorID && !isCommentAuthor {
			return apperror.NotFound("comment", commentID)
		}

		removed, err := comments.Delete(ctx, commentID)
		if err != nil {
			return err
		}
		if !removed {
			return database.ErrStaleRow
		}
		if c.Status != models.CommentStatusApproved {
			return nil
		}
		return posts.IncrCounters(ctx, post.ID, map[string]int64{"comment_count": -1}, database.Now(s.Clock))
	})
}

// ListComments returns the approved comments of a post the viewer may see.
func (s *CounterService) ListComments(ctx context.Context, viewerID, postID uint64, limit int) ([]*types.CommentResponse, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.VisibleTo(viewerID, database.Now(s.Clock)) {
		return nil, apperror.NotFound("post", postID)
	}
	comments, err := s.CommentDAO.ListApproved(ctx, postID, clampLimit(limit, defaultCommentListLimit, 100))
	if err != nil {
		return nil, err
	}
	out := make([]*types.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

func (s *CounterService) loadComment(ctx context.Context, comments *dao.CommentDAO, posts *dao.PostDAO, commentID uint64) (*models.Comment, *models.Post, error) {
	c, err := comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, apperror.NotFound("comment", commentID)
	}
	post, err := posts.FindByID(ctx, c.PostID)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, apperror.NotFound("comment", commentID)
	}
	return c, post, nil
}

// approvalDelta is the comment_count change for a status transition.
func approvalDelta(from, to models.CommentStatus) int64 {
	switch {
	case from != models.CommentStatusApproved && to == models.CommentStatusApproved:
		return 1
	case from == models.CommentStatusApproved && to != models.CommentStatusApproved:
		return -1
	}
	return 0
}
