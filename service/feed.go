package service

import (
	"Inkwell/config"
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/cursor"
	"Inkwell/pkg/database"
	"Inkwell/types"
	"context"
	"time"

	"github.com/juju/clock"
)

var _ IFeedService = (*FeedService)(nil)

type IFeedService interface {
	// GetFeed pages through live posts of followed authors, newest first.
	GetFeed(ctx context.Context, viewerID uint64, limit int, after string) (*types.FeedPage, error)
	GetTrendingPosts(ctx context.Context, limit int) ([]*types.PostSummary, error)
	GetSuggestedUsers(ctx context.Context, viewerID uint64, limit int) ([]*types.SuggestedUser, error)
}

type FeedService struct {
	PostDAO     *dao.PostDAO
	UserDAO     *dao.Users
	Follow      IFollowService
	Suggestions ISuggestionService
	Cursor      *cursor.Codec
	Scorer      Scorer
	Conf        *config.Feed
	Clock       clock.Clock
}

func (s *FeedService) GetFeed(ctx context.Context, viewerID uint64, limit int, after string) (*types.FeedPage, error) {
	limit = clampLimit(limit, types.DefaultFeedLimit, types.MaxFeedLimit)
	pos, err := s.Cursor.Decode(after)
	if err != nil {
		return nil, err
	}

	page := &types.FeedPage{Posts: []*types.PostSummary{}}
	following, err := s.Follow.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(following) == 0 {
		return page, nil
	}

	var afterAt *time.Time
	var afterID uint64
	if pos != nil {
		afterAt, afterID = &pos.PublishedAt, pos.PostID
	}
	now := database.Now(s.Clock)
	// one extra row tells whether another page exists
	posts, err := s.PostDAO.FeedPage(ctx, following, now, afterAt, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	if len(posts) > limit {
		page.HasMore = true
		posts = posts[:limit]
	}

	page.Posts, err = s.withAuthors(ctx, posts, now)
	if err != nil {
		return nil, err
	}
	if page.HasMore {
		last := posts[len(posts)-1]
		page.NextCursor, err = s.Cursor.Encode(cursor.Position{PublishedAt: publishedAt(last), PostID: last.ID})
		if err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *FeedService) GetTrendingPosts(ctx context.Context, limit int) ([]*types.PostSummary, error) {
	limit = clampLimit(limit, types.DefaultTrendingLimit, types.MaxFeedLimit)
	now := database.Now(s.Clock)
	since := now.AddDate(0, 0, -s.Conf.TrendingWindowDays)

	posts, err := s.PostDAO.LiveSince(ctx, since, now)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, RankTrending(posts, s.Scorer, now, limit), now)
}

func (s *FeedService) GetSuggestedUsers(ctx context.Context, viewerID uint64, limit int) ([]*types.SuggestedUser, error) {
	return s.Suggestions.Suggest(ctx, viewerID, limit)
}

func (s *FeedService) withAuthors(ctx context.Context, posts []*models.Post, now time.Time) ([]*types.PostSummary, error) {
	authorIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
	}
	authors, err := s.UserDAO.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	out := make([]*types.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostSummary(p, authors[p.AuthorID], now, false))
	}
	return out, nil
}
