// Package testutil builds an in-memory store for service and handler tests.
package testutil

import (
	"Inkwell/config"
	"Inkwell/models"
	"Inkwell/pkg/database"
	"Inkwell/pkg/snowflake"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Epoch is the simulated "now" every test clock starts at.
var Epoch = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func NewClock() *testclock.Clock {
	return testclock.NewClock(Epoch)
}

// NewDB opens a private in-memory SQLite database with every table migrated.
// A single connection serialises transactions the way row locks would.
func NewDB(t testing.TB, clk clock.Clock) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(clk, false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func NewConfig() *config.Config {
	conf, err := config.Parse([]byte("app:\n  env: test\njwt:\n  secret: test-secret\n  issuer: inkwell-test\n"))
	if err != nil {
		panic(err)
	}
	return conf
}

// NewUserRow builds an unsaved user named name.
func NewUserRow(clk clock.Clock, name string) *models.User {
	now := database.Now(clk)
	return &models.User{
		ID:              snowflake.GenID(),
		TokenIdentifier: "token|" + name,
		Username:        name,
		Name:            name,
		Email:           name + "@example.com",
		CreatedAt:       now,
		LastActiveAt:    now,
		UpdatedAt:       now,
	}
}

// CreateUser inserts a user directly, bypassing the counters.
func CreateUser(t testing.TB, db *gorm.DB, clk clock.Clock, name string) *models.User {
	t.Helper()
	user := NewUserRow(clk, name)
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateDraft inserts a draft post owned by authorID.
func CreateDraft(t testing.TB, db *gorm.DB, clk clock.Clock, authorID uint64, title string) *models.Post {
	t.Helper()
	now := database.Now(clk)
	post := &models.Post{
		ID:        snowflake.GenID(),
		AuthorID:  authorID,
		Title:     title,
		Content:   "content of " + title,
		Tags:      []string{},
		Status:    models.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// Reload reads a row back from the store.
func Reload[T any](t testing.TB, db *gorm.DB, id uint64) *T {
	t.Helper()
	var item T
	require.NoError(t, db.Where("id = ?", id).Take(&item).Error)
	return &item
}
