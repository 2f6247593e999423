package types

import "time"

const (
	DefaultFollowListLimit = 20
	MaxFollowListLimit     = 100
)

type FollowEntry struct {
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	ImageURL    string    `json:"image_url"`
	FollowsBack bool      `json:"follows_back"`
	FollowedAt  time.Time `json:"followed_at"`
}

type ListFollowRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
}

type FollowStatusResponse struct {
	IsFollowing bool `json:"is_following"`
}
