package models

import (
	"time"
)

// DateLayout is the calendar-day key of DailyStat, always in UTC.
const DateLayout = "2006-01-02"

// DailyStat accumulates views of one post on one UTC day. Rows are only
// ever inserted or incremented.
type DailyStat struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:uk_daily_stats_post_date,priority:1" json:"post_id"`
	Date      string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uk_daily_stats_post_date,priority:2" json:"date"`
	Views     int64     `gorm:"column:views;not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

// DayKey formats t as the DailyStat date key.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
