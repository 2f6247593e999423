package models

import (
	"time"
)

// Follow is a directed edge follower -> following. At most one row per
// ordered pair; unfollowing deletes the row.
type Follow struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	FollowerID  uint64    `gorm:"column:follower_id;not null;uniqueIndex:uk_follows_pair,priority:1;index:idx_follows_follower_created,priority:1" json:"follower_id"`
	FollowingID uint64    `gorm:"column:following_id;not null;uniqueIndex:uk_follows_pair,priority:2;index:idx_follows_following_created,priority:1" json:"following_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_follows_follower_created,priority:2;index:idx_follows_following_created,priority:2" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

// FollowQueryResult 关注/粉丝列表行
type FollowQueryResult struct {
	UserID     uint64    `gorm:"column:user_id" json:"user_id"`
	Name       string    `gorm:"column:name" json:"name"`
	Username   string    `gorm:"column:username" json:"username"`
	ImageURL   string    `gorm:"column:image_url" json:"image_url"`
	FollowedAt time.Time `gorm:"column:followed_at" json:"followed_at"`
	EdgeID     uint64    `gorm:"column:edge_id" json:"-"`
}
