package database_test

import (
	"Inkwell/internal/testutil"
	"Inkwell/models"
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/database"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTransactionRetriesUniqueCollision(t *testing.T) {
	clk := testutil.NewClock()
	db := testutil.NewDB(t, clk)
	taken := testutil.CreateUser(t, db, clk, "taken")
	ctx := context.Background()

	attempts := 0
	err := database.Transaction(ctx, db, "test.insert", func(tx *gorm.DB) error {
		attempts++
		if err := tx.Model(&models.User{}).Where("id = ?", taken.ID).
			UpdateColumn("bio", "touched").Error; err != nil {
			return err
		}
		token := "fresh"
		if attempts == 1 {
			// loses the race on the unique token index
			token = taken.TokenIdentifier
		}
		u := testutil.NewUserRow(clk, "fresh")
		u.TokenIdentifier = token
		return tx.Create(u).Error
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, "touched", testutil.Reload[models.User](t, db, taken.ID).Bio)
}

func TestTransactionGivesUpAsConflict(t *testing.T) {
	db := testutil.NewDB(t, testutil.NewClock())

	attempts := 0
	err := database.Transaction(context.Background(), db, "test.dup", func(tx *gorm.DB) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})
	assert.ErrorIs(t, err, apperror.ErrConflictRetryable)
	assert.Equal(t, 5, attempts)
}

func TestTransactionDoesNotRetryOtherErrors(t *testing.T) {
	db := testutil.NewDB(t, testutil.NewClock())
	boom := errors.New("boom")

	attempts := 0
	err := database.Transaction(context.Background(), db, "test.fail", func(tx *gorm.DB) error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
