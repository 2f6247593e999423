package models

import "time"

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected:
		return true
	}
	return false
}

// Comment 评论. AuthorID is nil for comments attributed by name only.
type Comment struct {
	ID          uint64        `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	PostID      uint64        `gorm:"column:post_id;not null;index:idx_comments_post_status,priority:1" json:"post_id"`
	AuthorID    *uint64       `gorm:"column:author_id" json:"author_id,omitempty"`
	AuthorName  string        `gorm:"column:author_name;type:varchar(128);not null;default:''" json:"author_name"`
	AuthorEmail string        `gorm:"column:author_email;type:varchar(191);not null;default:''" json:"-"`
	Content     string        `gorm:"column:content;type:text" json:"content"`
	Status      CommentStatus `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_comments_post_status,priority:2" json:"status"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null;index:idx_comments_post_status,priority:3" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
