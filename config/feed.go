package config

type Feed struct {
	TrendingWindowDays  int     `json:"trending_window_days" yaml:"trending_window_days"`
	TrendingGravity     float64 `json:"trending_gravity" yaml:"trending_gravity"`
	CommentAutoApprove  bool    `json:"comment_auto_approve" yaml:"comment_auto_approve"`
	SuggestionPoolScale int     `json:"suggestion_pool_scale" yaml:"suggestion_pool_scale"`
}

func (f *Feed) withDefaults() {
	if f.TrendingWindowDays <= 0 {
		f.TrendingWindowDays = 7
	}
	if f.TrendingGravity <= 0 {
		f.TrendingGravity = 1.5
	}
	if f.SuggestionPoolScale <= 0 {
		f.SuggestionPoolScale = 5
	}
}
