package models

import (
	"time"
)

// User is created on first authenticated access and never hard-deleted.
// The three counters are projections of follows and posts maintained by the
// services in the same transaction as the source row.
type User struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	TokenIdentifier string    `gorm:"column:token_identifier;type:varchar(191);not null;uniqueIndex:uk_users_token" json:"-"`
	Username        string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:uk_users_username" json:"username"`
	Name            string    `gorm:"column:name;type:varchar(128);not null;default:''" json:"name"`
	Email           string    `gorm:"column:email;type:varchar(191);not null;default:''" json:"email"`
	ImageURL        string    `gorm:"column:image_url;type:varchar(512);not null;default:''" json:"image_url"`
	Bio             string    `gorm:"column:bio;type:varchar(512);not null;default:''" json:"bio"`
	FollowersCount  int64     `gorm:"column:followers_count;not null;default:0;index:idx_users_followers" json:"followers_count"`
	FollowingCount  int64     `gorm:"column:following_count;not null;default:0" json:"following_count"`
	PostsCount      int64     `gorm:"column:posts_count;not null;default:0" json:"posts_count"`
	CreatedAt       time.Time `gorm:"column:created_at;not null" json:"created_at"`
	LastActiveAt    time.Time `gorm:"column:last_active_at;not null" json:"last_active_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
