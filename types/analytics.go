package types

import "time"

const (
	AnalyticsWindowDays   = 30
	DefaultActivityLimit  = 10
	MaxActivityLimit      = 50
	DefaultDashboardPosts = 5
)

type Analytics struct {
	TotalViews      int64   `json:"total_views"`
	TotalLikes      int64   `json:"total_likes"`
	TotalComments   int64   `json:"total_comments"`
	TotalFollowers  int64   `json:"total_followers"`
	ViewsGrowth     float64 `json:"views_growth"`
	LikesGrowth     float64 `json:"likes_growth"`
	CommentsGrowth  float64 `json:"comments_growth"`
	FollowersGrowth float64 `json:"followers_growth"`
}

// DailyViews is one point of the 30-day chart.
type DailyViews struct {
	Date     string `json:"date"` // 2006-01-02
	Views    int64  `json:"views"`
	Day      string `json:"day"`       // Mon
	FullDate string `json:"full_date"` // Jan 2
}

type ActivityType string

const (
	ActivityLike    ActivityType = "like"
	ActivityComment ActivityType = "comment"
	ActivityFollow  ActivityType = "follow"
)

type Activity struct {
	Type ActivityType `json:"type"`
	User string       `json:"user"`
	Post string       `json:"post,omitempty"`
	Time time.Time    `json:"time"`
}
