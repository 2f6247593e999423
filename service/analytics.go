package service

import (
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/database"
	"Inkwell/types"
	"context"
	"math"
	"sort"
	"time"

	"github.com/juju/clock"
	"gorm.io/gorm"
)

var _ IAnalyticsService = (*AnalyticsService)(nil)

// IAnalyticsService serves the author dashboard. Every query is bounded by
// the author's post ids and the 30-day window.
type IAnalyticsService interface {
	GetAnalytics(ctx context.Context, authorID uint64) (*types.Analytics, error)
	GetDailyViews(ctx context.Context, authorID uint64) ([]*types.DailyViews, error)
	GetRecentActivity(ctx context.Context, authorID uint64, limit int) ([]*types.Activity, error)
	GetPostsWithAnalytics(ctx context.Context, authorID uint64, limit int) ([]*types.PostSummary, error)
}

type AnalyticsService struct {
	DB           *gorm.DB
	PostDAO      *dao.PostDAO
	LikeDAO      *dao.LikeDAO
	CommentDAO   *dao.CommentDAO
	FollowDAO    *dao.FollowDAO
	DailyStatDAO *dao.DailyStatDAO
	Clock        clock.Clock
}

// GetAnalytics reads totals and window counts from one snapshot, so a write
// landing mid-call cannot push a recent count above its total.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, authorID uint64) (*types.Analytics, error) {
	now := database.Now(s.Clock)
	since := now.AddDate(0, 0, -types.AnalyticsWindowDays)
	firstDay := models.DayKey(windowStart(now))

	var (
		totals                                                 dao.AuthorTotals
		comments, followers                                    int64
		recentViews, recentLikes, recentComments, recentFollow int64
	)
	err := database.ReadSnapshot(ctx, s.DB, func(tx *gorm.DB) error {
		posts, likes := s.PostDAO.WithTx(tx), s.LikeDAO.WithTx(tx)
		cmts, follows, stats := s.CommentDAO.WithTx(tx), s.FollowDAO.WithTx(tx), s.DailyStatDAO.WithTx(tx)

		postIDs, err := posts.IDsByAuthor(ctx, authorID)
		if err != nil {
			return err
		}
		if totals, err = posts.TotalsByAuthor(ctx, authorID); err != nil {
			return err
		}
		if comments, err = cmts.CountApproved(ctx, postIDs); err != nil {
			return err
		}
		if followers, err = follows.GetFollowerCount(ctx, authorID); err != nil {
			return err
		}
		if recentViews, err = stats.SumViews(ctx, postIDs, firstDay); err != nil {
			return err
		}
		if recentLikes, err = likes.CountSince(ctx, postIDs, since); err != nil {
			return err
		}
		if recentComments, err = cmts.CountApprovedSince(ctx, postIDs, since); err != nil {
			return err
		}
		recentFollow, err = follows.CountFollowersSince(ctx, authorID, since)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &types.Analytics{
		TotalViews:      totals.Views,
		TotalLikes:      totals.Likes,
		TotalComments:   comments,
		TotalFollowers:  followers,
		ViewsGrowth:     Growth(recentViews, totals.Views),
		LikesGrowth:     Growth(recentLikes, totals.Likes),
		CommentsGrowth:  Growth(recentComments, comments),
		FollowersGrowth: Growth(recentFollow, followers),
	}, nil
}

// Growth is recent as a percentage of total, one decimal, 0 without a total.
func Growth(recent, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(recent)/float64(total)*1000) / 10
}

// windowStart is the first UTC day of the 30-day window ending today.
func windowStart(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -(types.AnalyticsWindowDays - 1))
}

// GetDailyViews returns exactly 30 days oldest first, zero filled.
func (s *AnalyticsService) GetDailyViews(ctx context.Context, authorID uint64) ([]*types.DailyViews, error) {
	now := database.Now(s.Clock)
	start := windowStart(now)
	var byDate map[string]int64
	err := database.ReadSnapshot(ctx, s.DB, func(tx *gorm.DB) error {
		postIDs, err := s.PostDAO.WithTx(tx).IDsByAuthor(ctx, authorID)
		if err != nil {
			return err
		}
		byDate, err = s.DailyStatDAO.WithTx(tx).ViewsByDate(ctx, postIDs, models.DayKey(start), models.DayKey(now))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]*types.DailyViews, 0, types.AnalyticsWindowDays)
	for i := 0; i < types.AnalyticsWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		key := models.DayKey(day)
		out = append(out, &types.DailyViews{
			Date:     key,
			Views:    byDate[key],
			Day:      day.Format("Mon"),
			FullDate: day.Format("Jan 2"),
		})
	}
	return out, nil
}

// GetRecentActivity merges likes, approved comments and new followers,
// newest first.
func (s *AnalyticsService) GetRecentActivity(ctx context.Context, authorID uint64, limit int) ([]*types.Activity, error) {
	limit = clampLimit(limit, types.DefaultActivityLimit, types.MaxActivityLimit)
	var (
		likes     []*dao.LikeActivity
		comments  []*models.Comment
		followers []*models.FollowQueryResult
		posts     map[uint64]*models.Post
	)
	err := database.ReadSnapshot(ctx, s.DB, func(tx *gorm.DB) error {
		postDAO := s.PostDAO.WithTx(tx)
		postIDs, err := postDAO.IDsByAuthor(ctx, authorID)
		if err != nil {
			return err
		}
		if likes, err = s.LikeDAO.WithTx(tx).Recent(ctx, postIDs, limit); err != nil {
			return err
		}
		if comments, err = s.CommentDAO.WithTx(tx).RecentApproved(ctx, postIDs, limit); err != nil {
			return err
		}
		if followers, err = s.FollowDAO.WithTx(tx).RecentFollowers(ctx, authorID, limit); err != nil {
			return err
		}

		referenced := make([]uint64, 0, len(likes)+len(comments))
		for _, l := range likes {
			referenced = append(referenced, l.PostID)
		}
		for _, c := range comments {
			referenced = append(referenced, c.PostID)
		}
		posts, err = postDAO.FindByIDs(ctx, referenced)
		return err
	})
	if err != nil {
		return nil, err
	}
	title := func(postID uint64) string {
		if p, ok := posts[postID]; ok {
			return p.Title
		}
		return ""
	}

	out := make([]*types.Activity, 0, len(likes)+len(comments)+len(followers))
	for _, l := range likes {
		out = append(out, &types.Activity{Type: types.ActivityLike, User: l.UserName, Post: title(l.PostID), Time: l.CreatedAt})
	}
	for _, c := range comments {
		out = append(out, &types.Activity{Type: types.ActivityComment, User: c.AuthorName, Post: title(c.PostID), Time: c.CreatedAt})
	}
	for _, f := range followers {
		out = append(out, &types.Activity{Type: types.ActivityFollow, User: f.Name, Time: f.FollowedAt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AnalyticsService) GetPostsWithAnalytics(ctx context.Context, authorID uint64, limit int) ([]*types.PostSummary, error) {
	posts, err := s.PostDAO.FindByAuthor(ctx, authorID, "", clampLimit(limit, types.DefaultDashboardPosts, 50))
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
