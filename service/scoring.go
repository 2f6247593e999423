package service

import (
	"Inkwell/config"
	"Inkwell/models"
	"math"
	"sort"
	"time"
)

// Scorer ranks a post for the trending list. Implementations must be pure:
// the same post and now always give the same score.
type Scorer interface {
	Score(post *models.Post, now time.Time) float64
}

// GravityScorer weighs engagement and lets it decay with age:
//
//	score = (views*ViewWeight + likes*LikeWeight + comments*CommentWeight + 1) / (ageHours + 2)^Gravity
type GravityScorer struct {
	ViewWeight    float64
	LikeWeight    float64
	CommentWeight float64
	Gravity       float64
}

func NewScorer(conf *config.Feed) Scorer {
	return GravityScorer{
		ViewWeight:    0.1,
		LikeWeight:    3,
		CommentWeight: 5,
		Gravity:       conf.TrendingGravity,
	}
}

func (g GravityScorer) Score(post *models.Post, now time.Time) float64 {
	engagement := float64(post.ViewCount)*g.ViewWeight +
		float64(post.LikeCount)*g.LikeWeight +
		float64(post.CommentCount)*g.CommentWeight
	var ageHours float64
	if post.PublishedAt != nil {
		ageHours = math.Max(0, now.Sub(*post.PublishedAt).Hours())
	}
	return (engagement + 1) / math.Pow(ageHours+2, g.Gravity)
}

type scoredPost struct {
	post  *models.Post
	score float64
}

// RankTrending orders posts by score desc, then published_at desc, then id
// desc, and keeps the first limit.
func RankTrending(posts []*models.Post, scorer Scorer, now time.Time, limit int) []*models.Post {
	scored := make([]scoredPost, 0, len(posts))
	for _, p := range posts {
		scored = append(scored, scoredPost{post: p, score: scorer.Score(p, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		at, bt := publishedAt(a.post), publishedAt(b.post)
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.post.ID > b.post.ID
	})
	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]*models.Post, len(scored))
	for i, s := range scored {
		out[i] = s.post
	}
	return out
}

func publishedAt(p *models.Post) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}
