package types

import "time"

// PostState is the computed lifecycle state of a post at read time.
type PostState string

const (
	PostStateDraft     PostState = "draft"
	PostStateScheduled PostState = "scheduled"
	PostStateLive      PostState = "live"
)

const (
	MaxTitleLength   = 200
	MaxCommentLength = 2000
)

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags" binding:"omitempty,max=10,dive,max=32"`
	Category      string   `json:"category" binding:"omitempty,max=64"`
	FeaturedImage string   `json:"featured_image" binding:"omitempty,max=512"`
}

// UpdatePostRequest nil fields are left untouched.
type UpdatePostRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=200"`
	Content       *string   `json:"content"`
	Tags          *[]string `json:"tags"`
	Category      *string   `json:"category" binding:"omitempty,max=64"`
	FeaturedImage *string   `json:"featured_image" binding:"omitempty,max=512"`
}

type SchedulePostRequest struct {
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
}

type PostSummary struct {
	ID            uint64       `json:"id"`
	AuthorID      uint64       `json:"author_id"`
	Author        *UserSummary `json:"author,omitempty"`
	Title         string       `json:"title"`
	Content       string       `json:"content,omitempty"`
	Tags          []string     `json:"tags"`
	Category      string       `json:"category"`
	FeaturedImage string       `json:"featured_image"`
	Status        string       `json:"status"`
	State         PostState    `json:"state"`
	ScheduledFor  *time.Time   `json:"scheduled_for,omitempty"`
	PublishedAt   *time.Time   `json:"published_at,omitempty"`
	ViewCount     int64        `json:"view_count"`
	LikeCount     int64        `json:"like_count"`
	CommentCount  int64        `json:"comment_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type ListPostsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=draft published"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}
