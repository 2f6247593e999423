package dao

import (
	"Inkwell/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type LikeDAO struct {
	Repo[models.Like]
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{Repo: NewRepo[models.Like](db)}
}

func (d *LikeDAO) WithTx(tx *gorm.DB) *LikeDAO {
	return &LikeDAO{Repo: d.Repo.With(tx)}
}

// IsLiked 是否点赞
func (d *LikeDAO) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	exist, err := d.IsExist(ctx, "user_id = ? AND post_id = ?", userID, postID)
	return exist, wrap("LikeDAO.IsLiked", err)
}

// Delete removes the like and reports whether one existed.
func (d *LikeDAO) Delete(ctx context.Context, userID, postID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, wrap("LikeDAO.Delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *LikeDAO) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	n, err := d.Count(ctx, "post_id = ?", postID)
	return n, wrap("LikeDAO.CountByPost", err)
}

func (d *LikeDAO) CountSince(ctx context.Context, postIDs []uint64, since time.Time) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	n, err := d.Count(ctx, "post_id IN ? AND created_at >= ?", uniqueIDs(postIDs), since)
	return n, wrap("LikeDAO.CountSince", err)
}

// LikeActivity is one like joined with the liker's display name.
type LikeActivity struct {
	PostID    uint64    `gorm:"column:post_id"`
	UserName  string    `gorm:"column:user_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Recent returns the newest likes across postIDs.
func (d *LikeDAO) Recent(ctx context.Context, postIDs []uint64, limit int) ([]*LikeActivity, error) {
	if len(postIDs) == 0 {
		return []*LikeActivity{}, nil
	}
	var rows []*LikeActivity
	err := d.Db.WithContext(ctx).
		Table("likes l").
		Select("l.post_id, u.name AS user_name, l.created_at").
		Joins("JOIN users u ON u.id = l.user_id").
		Where("l.post_id IN ?", uniqueIDs(postIDs)).
		Order("l.created_at DESC").
		Order("l.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, wrap("LikeDAO.Recent", err)
}
