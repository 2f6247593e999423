package types

import "time"

// Identity is what the external auth provider vouches for.
type Identity struct {
	TokenIdentifier string
	Name            string
	Email           string
	PictureURL      string
}

// UserSummary is the author/follower card shown next to content.
type UserSummary struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

type UserProfile struct {
	UserSummary
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	PostsCount     int64     `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
}
