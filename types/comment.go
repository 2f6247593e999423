package types

import "time"

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateCommentResponse struct {
	CommentID uint64 `json:"comment_id"`
	Status    string `json:"status"`
}

type ModerateCommentRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

type CommentResponse struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"post_id"`
	AuthorID   *uint64   `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
