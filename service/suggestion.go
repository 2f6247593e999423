package service

import (
	"Inkwell/config"
	"Inkwell/dao"
	"Inkwell/models"
	"Inkwell/pkg/database"
	"Inkwell/types"
	"context"
	"math"
	"sort"

	"github.com/juju/clock"
)

var _ ISuggestionService = (*SuggestionService)(nil)

type ISuggestionService interface {
	Suggest(ctx context.Context, viewerID uint64, limit int) ([]*types.SuggestedUser, error)
}

// suggestionRecentDays bounds the "recently active author" signal.
const suggestionRecentDays = 30

type SuggestionService struct {
	UserDAO   *dao.Users
	PostDAO   *dao.PostDAO
	FollowDAO *dao.FollowDAO
	Follow    IFollowService
	Conf      *config.Feed
	Clock     clock.Clock
}

// Candidate is one user considered for suggestion with its signals.
type Candidate struct {
	User          *models.User
	RecentPosts   int64
	MutualFollows int64
}

func (s *SuggestionService) Suggest(ctx context.Context, viewerID uint64, limit int) ([]*types.SuggestedUser, error) {
	limit = clampLimit(limit, types.DefaultSuggestionLimit, types.MaxSuggestionLimit)
	following, err := s.Follow.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// the pool must still hold limit users after dropping the viewer and
	// everyone already followed
	pool, err := s.UserDAO.TopByFollowers(ctx, limit*s.Conf.SuggestionPoolScale+len(following)+1)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(pool))
	for _, u := range pool {
		ids = append(ids, u.ID)
	}

	now := database.Now(s.Clock)
	recent, err := s.PostDAO.CountLiveSinceByAuthors(ctx, ids, now.AddDate(0, 0, -suggestionRecentDays), now)
	if err != nil {
		return nil, err
	}
	mutual, err := s.FollowDAO.MutualCounts(ctx, following, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, u := range pool {
		candidates = append(candidates, Candidate{
			User:          u,
			RecentPosts:   recent[u.ID],
			MutualFollows: mutual[u.ID],
		})
	}
	followingSet := make(map[uint64]struct{}, len(following))
	for _, id := range following {
		followingSet[id] = struct{}{}
	}
	return RankSuggestions(viewerID, followingSet, candidates, limit), nil
}

// SuggestionScore combines the signals; audience size is damped so that
// activity and mutual follows can lift smaller authors.
func SuggestionScore(c Candidate) float64 {
	return math.Log1p(float64(c.User.FollowersCount))*2 +
		float64(c.RecentPosts)*1.5 +
		float64(c.MutualFollows)*3
}

// RankSuggestions drops the viewer and followed users, then orders by score
// desc, followers desc, id asc.
func RankSuggestions(viewerID uint64, following map[uint64]struct{}, candidates []Candidate, limit int) []*types.SuggestedUser {
	out := make([]*types.SuggestedUser, 0, len(candidates))
	for _, c := range candidates {
		if c.User == nil || c.User.ID == viewerID {
			continue
		}
		if _, ok := following[c.User.ID]; ok {
			continue
		}
		out = append(out, &types.SuggestedUser{
			UserSummary:    *toUserSummary(c.User),
			FollowersCount: c.User.FollowersCount,
			RecentPosts:    c.RecentPosts,
			MutualFollows:  c.MutualFollows,
			Score:          math.Round(SuggestionScore(c)*1000) / 1000,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.FollowersCount != b.FollowersCount {
			return a.FollowersCount > b.FollowersCount
		}
		return a.ID < b.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
