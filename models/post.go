package models

import (
	"time"

	"gorm.io/datatypes"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post 文章. A published post with ScheduledFor in the future is
// "scheduled"; it becomes live without any write once the clock passes it.
type Post struct {
	ID            uint64                      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AuthorID      uint64                      `gorm:"column:author_id;not null;index:idx_posts_author_status,priority:1" json:"author_id"`
	Title         string                      `gorm:"column:title;type:varchar(200);not null;default:''" json:"title"`
	Content       string                      `gorm:"column:content;type:text" json:"content"`
	Tags          datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Category      string                      `gorm:"column:category;type:varchar(64);not null;default:''" json:"category"`
	FeaturedImage string                      `gorm:"column:featured_image;type:varchar(512);not null;default:''" json:"featured_image"`
	Status        PostStatus                  `gorm:"column:status;type:varchar(16);not null;default:'draft';index:idx_posts_author_status,priority:2;index:idx_posts_status_published,priority:1" json:"status"`
	ScheduledFor  *time.Time                  `gorm:"column:scheduled_for" json:"scheduled_for,omitempty"`
	PublishedAt   *time.Time                  `gorm:"column:published_at;index:idx_posts_status_published,priority:2" json:"published_at,omitempty"`
	ViewCount     int64                       `gorm:"column:view_count;not null;default:0" json:"view_count"`
	LikeCount     int64                       `gorm:"column:like_count;not null;default:0" json:"like_count"`
	CommentCount  int64                       `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	CreatedAt     time.Time                   `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// IsLive is the visibility predicate shared by every reader.
func (p *Post) IsLive(now time.Time) bool {
	if p.Status != PostStatusPublished {
		return false
	}
	return p.ScheduledFor == nil || !p.ScheduledFor.After(now)
}

// IsScheduled reports a published post still waiting for its release time.
func (p *Post) IsScheduled(now time.Time) bool {
	return p.Status == PostStatusPublished && p.ScheduledFor != nil && p.ScheduledFor.After(now)
}

// VisibleTo reports whether viewerID may read the post at now.
func (p *Post) VisibleTo(viewerID uint64, now time.Time) bool {
	return p.AuthorID == viewerID || p.IsLive(now)
}
