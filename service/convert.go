package service

import (
	"Inkwell/models"
	"Inkwell/types"
	"time"
)

// clampLimit maps a missing or non-positive limit to def and caps it at maxLimit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func toUserSummary(u *models.User) *types.UserSummary {
	if u == nil {
		return nil
	}
	return &types.UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		ImageURL: u.ImageURL,
	}
}

func toUserProfile(u *models.User) *types.UserProfile {
	return &types.UserProfile{
		UserSummary:    *toUserSummary(u),
		Email:          u.Email,
		Bio:            u.Bio,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		PostsCount:     u.PostsCount,
		CreatedAt:      u.CreatedAt,
	}
}

func postState(p *models.Post, now time.Time) types.PostState {
	switch {
	case p.IsLive(now):
		return types.PostStateLive
	case p.IsScheduled(now):
		return types.PostStateScheduled
	default:
		return types.PostStateDraft
	}
}

// toPostSummary builds the response shape; withContent is false for list views.
func toPostSummary(p *models.Post, author *models.User, now time.Time, withContent bool) *types.PostSummary {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	out := &types.PostSummary{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Author:        toUserSummary(author),
		Title:         p.Title,
		Tags:          tags,
		Category:      p.Category,
		FeaturedImage: p.FeaturedImage,
		Status:        string(p.Status),
		State:         postState(p, now),
		ScheduledFor:  p.ScheduledFor,
		PublishedAt:   p.PublishedAt,
		ViewCount:     p.ViewCount,
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if withContent {
		out.Content = p.Content
	}
	return out
}

func toCommentResponse(c *models.Comment) *types.CommentResponse {
	return &types.CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
	}
}
