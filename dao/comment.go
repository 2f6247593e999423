package dao

import (
	"Inkwell/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		Repo: NewRepo[models.Comment](db),
	}
}

func (d *CommentDAO) WithTx(tx *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: d.Repo.With(tx)}
}

// UpdateStatus moves a comment from one status to another and reports
// whether this call performed the transition.
func (d *CommentDAO) UpdateStatus(ctx context.Context, commentID uint64, from, to models.CommentStatus, now time.Time) (bool, error) {
	res := d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND status = ?", commentID, from).
		UpdateColumns(map[string]any{"status": to, "updated_at": now})
	if res.Error != nil {
		return false, wrap("CommentDAO.UpdateStatus", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (d *CommentDAO) Delete(ctx context.Context, commentID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).Where("id = ?", commentID).Delete(&models.Comment{})
	if res.Error != nil {
		return false, wrap("CommentDAO.Delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListApproved 文章下已审核的评论, newest first
func (d *CommentDAO) ListApproved(ctx context.Context, postID uint64, limit int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postID, models.CommentStatusApproved).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, wrap("CommentDAO.ListApproved", err)
}

func (d *CommentDAO) CountApproved(ctx context.Context, postIDs []uint64) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	n, err := d.Count(ctx, "post_id IN ? AND status = ?", uniqueIDs(postIDs), models.CommentStatusApproved)
	return n, wrap("CommentDAO.CountApproved", err)
}

func (d *CommentDAO) CountApprovedSince(ctx context.Context, postIDs []uint64, since time.Time) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	n, err := d.Count(ctx, "post_id IN ? AND status = ? AND created_at >= ?",
		uniqueIDs(postIDs), models.CommentStatusApproved, since)
	return n, wrap("CommentDAO.CountApprovedSince", err)
}

// RecentApproved returns the newest approved comments across postIDs.
func (d *CommentDAO) RecentApproved(ctx context.Context, postIDs []uint64, limit int) ([]*models.Comment, error) {
	if len(postIDs) == 0 {
		return []*models.Comment{}, nil
	}
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("post_id IN ? AND status = ?", uniqueIDs(postIDs), models.CommentStatusApproved).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, wrap("CommentDAO.RecentApproved", err)
}
