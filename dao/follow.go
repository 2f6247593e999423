package dao

import (
	"Inkwell/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type FollowDAO struct {
	Repo[models.Follow]
}

func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{
		Repo: NewRepo[models.Follow](db),
	}
}

func (d *FollowDAO) WithTx(tx *gorm.DB) *FollowDAO {
	return &FollowDAO{Repo: d.Repo.With(tx)}
}

// IsFollowing 检查是否已关注
func (d *FollowDAO) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	exist, err := d.IsExist(ctx, "follower_id = ? AND following_id = ?", followerID, followingID)
	return exist, wrap("FollowDAO.IsFollowing", err)
}

// Delete removes the edge and reports whether one existed.
func (d *FollowDAO) Delete(ctx context.Context, followerID, followingID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, wrap("FollowDAO.Delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// FollowingIDs 用户关注的所有人
func (d *FollowDAO) FollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, wrap("FollowDAO.FollowingIDs", err)
}

// ListFollowers 粉丝列表（按关注时间倒序）
func (d *FollowDAO) ListFollowers(ctx context.Context, userID uint64, limit int) ([]*models.FollowQueryResult, error) {
	return d.list(ctx, "f.following_id", "f.follower_id", userID, limit)
}

// ListFollowing 关注列表（按关注时间倒序）
func (d *FollowDAO) ListFollowing(ctx context.Context, userID uint64, limit int) ([]*models.FollowQueryResult, error) {
	return d.list(ctx, "f.follower_id", "f.following_id", userID, limit)
}

func (d *FollowDAO) list(ctx context.Context, anchorCol, otherCol string, userID uint64, limit int) ([]*models.FollowQueryResult, error) {
	var rows []*models.FollowQueryResult
	err := d.Db.WithContext(ctx).
		Table("follows f").
		Select("u.id AS user_id, u.name, u.username, u.image_url, f.created_at AS followed_at, f.id AS edge_id").
		Joins("JOIN users u ON u.id = "+otherCol).
		Where(anchorCol+" = ?", userID).
		Order("f.created_at DESC").
		Order("f.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, wrap("FollowDAO.list", err)
}

// FollowedAmong returns which of targets followerID follows.
func (d *FollowDAO) FollowedAmong(ctx context.Context, followerID uint64, targets []uint64) (map[uint64]bool, error) {
	out := make(map[uint64]bool, len(targets))
	if len(targets) == 0 {
		return out, nil
	}
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, uniqueIDs(targets)).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, wrap("FollowDAO.FollowedAmong", err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// FollowersAmong returns which of sources follow followingID.
func (d *FollowDAO) FollowersAmong(ctx context.Context, followingID uint64, sources []uint64) (map[uint64]bool, error) {
	out := make(map[uint64]bool, len(sources))
	if len(sources) == 0 {
		return out, nil
	}
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND follower_id IN ?", followingID, uniqueIDs(sources)).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, wrap("FollowDAO.FollowersAmong", err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// MutualCounts counts, for each candidate, how many of via follow it.
func (d *FollowDAO) MutualCounts(ctx context.Context, via, candidates []uint64) (map[uint64]int64, error) {
	if len(via) == 0 || len(candidates) == 0 {
		return map[uint64]int64{}, nil
	}
	var rows []idCount
	err := d.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("following_id AS id, COUNT(*) AS cnt").
		Where("follower_id IN ? AND following_id IN ?", uniqueIDs(via), uniqueIDs(candidates)).
		Group("following_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("FollowDAO.MutualCounts", err)
	}
	return toCountMap(rows), nil
}

// GetFollowerCount 粉丝数 from the edge table
func (d *FollowDAO) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	n, err := d.Count(ctx, "following_id = ?", userID)
	return n, wrap("FollowDAO.GetFollowerCount", err)
}

// GetFollowingCount 关注数 from the edge table
func (d *FollowDAO) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	n, err := d.Count(ctx, "follower_id = ?", userID)
	return n, wrap("FollowDAO.GetFollowingCount", err)
}

func (d *FollowDAO) CountFollowersSince(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	n, err := d.Count(ctx, "following_id = ? AND created_at >= ?", userID, since)
	return n, wrap("FollowDAO.CountFollowersSince", err)
}

// RecentFollowers returns the newest follow edges pointing at userID.
func (d *FollowDAO) RecentFollowers(ctx context.Context, userID uint64, limit int) ([]*models.FollowQueryResult, error) {
	return d.ListFollowers(ctx, userID, limit)
}
