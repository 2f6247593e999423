package types

// Pagination defaults
const (
	DefaultFeedLimit       = 10
	MaxFeedLimit           = 50
	DefaultTrendingLimit   = 10
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 50
)

type FeedRequest struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Cursor string `form:"cursor"`
}

type FeedPage struct {
	Posts      []*PostSummary `json:"posts"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type SuggestedUser struct {
	UserSummary
	FollowersCount int64   `json:"followers_count"`
	RecentPosts    int64   `json:"recent_posts"`
	MutualFollows  int64   `json:"mutual_follows"`
	Score          float64 `json:"score"`
}
