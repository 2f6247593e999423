package service

import (
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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *types.CreatePostRequest) (*types.PostSummary, error)
	UpdatePost(ctx context.Context, actorID, postID uint64, req *types.UpdatePostRequest) (*types.PostSummary, error)
	// GetPost hides non-live posts from everyone but their author.
	GetPost(ctx context.Context, viewerID, postID uint64) (*types.PostSummary, error)
	GetUserPosts(ctx context.Context, authorID uint64, status models.PostStatus, limit int) ([]*types.PostSummary, error)
	// GetUserDraft returns the most recently edited draft, nil when none.
	GetUserDraft(ctx context.Context, authorID uint64) (*types.PostSummary, error)
}

type PostService struct {
	DB      *gorm.DB
	PostDAO *dao.PostDAO
	UserDAO *dao.Users
	Clock   clock.Clock
}

const defaultUserPostsLimit = 20

func (s *PostService) CreatePost(ctx context.Context, authorID uint64, req *types.CreatePostRequest) (*types.PostSummary, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	author, err := s.UserDAO.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperror.Unauthenticated("unknown user")
	}

	now := database.Now(s.Clock)
	post := &models.Post{
		ID:            snowflake.GenID(),
		AuthorID:      authorID,
		Title:         title,
		Content:       req.Content,
		Tags:          normalizeTags(req.Tags),
		Category:      strings.TrimSpace(req.Category),
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Status:        models.PostStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.PostDAO.Create(ctx, post); err != nil {
		return nil, err
	}
	return toPostSummary(post, author, now, true), nil
}

// UpdatePost edits content fields only; status changes go through the scheduler.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uint64, req *types.UpdatePostRequest) (*types.PostSummary, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != actorID {
		return nil, apperror.NotFound("post", postID)
	}

	now := database.Now(s.Clock)
	updates := map[string]any{"updated_at": now}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		updates["tags"] = normalizeTags(*req.Tags)
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = strings.TrimSpace(*req.FeaturedImage)
	}
	if err := s.PostDAO.UpdateFields(ctx, postID, updates); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, actorID, postID)
}

func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint64) (*types.PostSummary, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	now := database.Now(s.Clock)
	if post == nil || !post.VisibleTo(viewerID, now) {
		return nil, apperror.NotFound("post", postID)
	}
	author, err := s.UserDAO.FindByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return toPostSummary(post, author, now, true), nil
}

func (s *PostService) GetUserPosts(ctx context.Context, authorID uint64, status models.PostStatus, limit int) ([]*types.PostSummary, error) {
	posts, err := s.PostDAO.FindByAuthor(ctx, authorID, status, clampLimit(limit, defaultUserPostsLimit, 100))
	if err != nil {
		return nil, err
	}
	now := database.Now(s.Clock)
	out := make([]*types.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostSummary(p, nil, now, false))
	}
	return out, nil
}

func (s *PostService) GetUserDraft(ctx context.Context, authorID uint64) (*types.PostSummary, error) {
	post, err := s.PostDAO.LatestDraft(ctx, authorID)
	if err != nil || post == nil {
		return nil, err
	}
	return toPostSummary(post, nil, database.Now(s.Clock), true), nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperror.InvalidArgument("title", "title must not be empty")
	}
	if utf8.RuneCountInString(title) > types.MaxTitleLength {
		return apperror.InvalidArgument("title", "title is too long")
	}
	return nil
}

// normalizeTags trims, lowercases and dedupes tags, keeping first-seen order.
func normalizeTags(tags []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
