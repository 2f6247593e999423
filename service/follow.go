package service

import (
	"Inkwell/dao"
	"Inkwell/dao/cache"
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/database"
	"Inkwell/pkg/log"
	"Inkwell/pkg/snowflake"
	"Inkwell/types"
	"context"

	"github.com/juju/clock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IFollowService = (*FollowService)(nil)

type IFollowService interface {
	// ToggleFollow flips the edge and reports whether it now exists.
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	ListFollowers(ctx context.Context, userID uint64, limit int) ([]*types.FollowEntry, error)
	ListFollowing(ctx context.Context, userID uint64, limit int) ([]*types.FollowEntry, error)
	// FollowingIDs is the viewer's followed set, served from cache when possible.
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type FollowService struct {
	DB        *gorm.DB
	FollowDAO *dao.FollowDAO
	UserDAO   *dao.Users
	Cache     *cache.FollowingCache
	Clock     clock.Clock
}

func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	// 不能关注自己
	if followerID == followingID {
		return false, apperror.InvalidArgument("user_id", "cannot follow yourself")
	}

	var following bool
	err := database.Transaction(ctx, s.DB, "follow.toggle", func(tx *gorm.DB) error {
		users := s.UserDAO.WithTx(tx)
		follows := s.FollowDAO.WithTx(tx)

		target, err := users.FindByID(ctx, followingID)
		if err != nil {
			return err
		}
		if target == nil {
			return apperror.NotFound("user", followingID)
		}

		now := database.Now(s.Clock)
		removed, err := follows.Delete(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if removed {
			following = false
			return users.IncrFollowCounts(ctx, followerID, followingID, -1, now)
		}

		edge := &models.Follow{
			ID:          snowflake.GenID(),
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   now,
		}
		if err := follows.Create(ctx, edge); err != nil {
			return err
		}
		following = true
		return users.IncrFollowCounts(ctx, followerID, followingID, 1, now)
	})
	if err != nil {
		return false, err
	}

	if err := s.Cache.Invalidate(ctx, followerID); err != nil {
		log.L.Warn("invalidate following cache failed", zap.Uint64("user_id", followerID), zap.Error(err))
	}
	return following, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	if followerID == followingID {
		return false, nil
	}
	return s.FollowDAO.IsFollowing(ctx, followerID, followingID)
}

// ListFollowers 粉丝列表. FollowsBack marks followers the user follows too.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, limit int) ([]*types.FollowEntry, error) {
	limit = clampLimit(limit, types.DefaultFollowListLimit, types.MaxFollowListLimit)
	rows, err := s.FollowDAO.ListFollowers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	back, err := s.FollowDAO.FollowedAmong(ctx, userID, resultUserIDs(rows))
	if err != nil {
		return nil, err
	}
	return toFollowEntries(rows, back), nil
}

// ListFollowing 关注列表. FollowsBack marks users who follow back.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint64, limit int) ([]*types.FollowEntry, error) {
	limit = clampLimit(limit, types.DefaultFollowListLimit, types.MaxFollowListLimit)
	rows, err := s.FollowDAO.ListFollowing(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	back, err := s.FollowDAO.FollowersAmong(ctx, userID, resultUserIDs(rows))
	if err != nil {
		return nil, err
	}
	return toFollowEntries(rows, back), nil
}

func (s *FollowService) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	ids, ok, err := s.Cache.Get(ctx, userID)
	if err != nil {
		log.L.Warn("read following cache failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
	if ok {
		return ids, nil
	}

	// the version must be read before the database
	version, verErr := s.Cache.Version(ctx, userID)
	ids, err = s.FollowDAO.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		log.L.Warn("read following cache version failed", zap.Uint64("user_id", userID), zap.Error(verErr))
		return ids, nil
	}
	if _, err := s.Cache.Set(ctx, userID, ids, version); err != nil {
		log.L.Warn("write following cache failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
	return ids, nil
}

func resultUserIDs(rows []*models.FollowQueryResult) []uint64 {
	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	return ids
}

func toFollowEntries(rows []*models.FollowQueryResult, back map[uint64]bool) []*types.FollowEntry {
	out := make([]*types.FollowEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, &types.FollowEntry{
			UserID:      r.UserID,
			Name:        r.Name,
			Username:    r.Username,
			ImageURL:    r.ImageURL,
			FollowsBack: back[r.UserID],
			FollowedAt:  r.FollowedAt,
		})
	}
	return out
}
