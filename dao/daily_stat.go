package dao

import (
	"Inkwell/models"
	"Inkwell/pkg/snowflake"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatDAO struct {
	Repo[models.DailyStat]
}

func NewDailyStatDAO(db *gorm.DB) *DailyStatDAO {
	return &DailyStatDAO{Repo: NewRepo[models.DailyStat](db)}
}

func (d *DailyStatDAO) WithTx(tx *gorm.DB) *DailyStatDAO {
	return &DailyStatDAO{Repo: d.Repo.With(tx)}
}

// IncrViews upserts (post, date) and adds delta to its views.
func (d *DailyStatDAO) IncrViews(ctx context.Context, postID uint64, date string, delta int64, now time.Time) error {
	row := models.DailyStat{
		ID:        snowflake.GenID(),
		PostID:    postID,
		Date:      date,
		Views:     delta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"views":      gorm.Expr("views + ?", delta),
				"updated_at": now,
			}),
		}).
		Create(&row).Error
	return wrap("DailyStatDAO.IncrViews", err)
}

type DayViews struct {
	Date  string `gorm:"column:date"`
	Views int64  `gorm:"column:views"`
}

// ViewsByDate merges the views of all postIDs per day within [from, to].
func (d *DailyStatDAO) ViewsByDate(ctx context.Context, postIDs []uint64, from, to string) (map[string]int64, error) {
	out := make(map[string]int64)
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []DayViews
	err := d.Db.WithContext(ctx).
		Model(&models.DailyStat{}).
		Select("date, COALESCE(SUM(views), 0) AS views").
		Where("post_id IN ? AND date >= ? AND date <= ?", uniqueIDs(postIDs), from, to).
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("DailyStatDAO.ViewsByDate", err)
	}
	for _, r := range rows {
		out[r.Date] = r.Views
	}
	return out, nil
}

// SumViews totals the views of postIDs from the given day on.
func (d *DailyStatDAO) SumViews(ctx context.Context, postIDs []uint64, from string) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := d.Db.WithContext(ctx).
		Model(&models.DailyStat{}).
		Select("COALESCE(SUM(views), 0)").
		Where("post_id IN ? AND date >= ?", uniqueIDs(postIDs), from).
		Scan(&total).Error
	return total, wrap("DailyStatDAO.SumViews", err)
}

// SumAllViews is the source of truth for posts.view_count.
func (d *DailyStatDAO) SumAllViews(ctx context.Context, postID uint64) (int64, error) {
	var total int64
	err := d.Db.WithContext(ctx).
		Model(&models.DailyStat{}).
		Select("COALESCE(SUM(views), 0)").
		Where("post_id = ?", postID).
		Scan(&total).Error
	return total, wrap("DailyStatDAO.SumAllViews", err)
}
