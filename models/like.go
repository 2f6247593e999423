package models

import "time"

// Like 点赞记录, unique per (user_id, post_id).
type Like struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_likes_user_post,priority:1" json:"user_id"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:uk_likes_user_post,priority:2;index:idx_likes_post_created,priority:1" json:"post_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_likes_post_created,priority:2" json:"created_at"`
}

func (Like) TableName() string { return "likes" }
