package dao

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Repo is embedded by every DAO. Db is either the root handle or the
// transaction the DAO was bound to with With.
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// With returns a copy bound to tx.
func (r Repo[T]) With(tx *gorm.DB) Repo[T] {
	return Repo[T]{Db: tx}
}

// FindByID returns (nil, nil) when no row matches.
func (r Repo[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	return r.FindByWhere(ctx, "id = ?", id)
}

// FindByWhere returns (nil, nil) when no row matches.
func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).Where(where, args...).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) FindAll(ctx context.Context, where string, args ...any) ([]*T, error) {
	var items []*T
	err := r.Db.WithContext(ctx).Where(where, args...).Find(&items).Error
	return items, err
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r Repo[T]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Count(&count).Error
	return count, err
}

func (r Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}

// IncrColumns adds each delta to its column on row id, clamping at zero, and
// refreshes updated_at. Column names come from code, never from input.
func (r Repo[T]) IncrColumns(ctx context.Context, id uint64, deltas map[string]int64, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	updates := make(map[string]any, len(deltas)+1)
	for col, delta := range deltas {
		updates[col] = gorm.Expr(clampedAdd(col), delta, delta)
	}
	updates["updated_at"] = now
	return r.Db.WithContext(ctx).Model(new(T)).Where("id = ?", id).UpdateColumns(updates).Error
}

// SetColumns overwrites counters, used by reconciliation.
func (r Repo[T]) SetColumns(ctx context.Context, id uint64, values map[string]int64, now time.Time) error {
	updates := make(map[string]any, len(values)+1)
	for col, v := range values {
		updates[col] = v
	}
	updates["updated_at"] = now
	return r.Db.WithContext(ctx).Model(new(T)).Where("id = ?", id).UpdateColumns(updates).Error
}

// 避免计数为负
func clampedAdd(col string) string {
	return fmt.Sprintf("CASE WHEN %s + ? < 0 THEN 0 ELSE %s + ? END", col, col)
}

type idCount struct {
	ID    uint64 `gorm:"column:id"`
	Count int64  `gorm:"column:cnt"`
}

func toCountMap(rows []idCount) map[uint64]int64 {
	m := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		m[r.ID] = r.Count
	}
	return m
}

// uniqueIDs returns ids deduplicated and sorted, for stable IN lists.
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dao.%s: %w", op, err)
}
