package database

import (
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/log"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStaleRow is returned from inside a transaction when a guarded update
// matched no row because another writer got there first.
var ErrStaleRow = errors.New("database: row changed concurrently")

const (
	txAttempts = 5
	txDelay    = 10 * time.Millisecond
	txMaxDelay = 200 * time.Millisecond
)

// Transaction runs fn in a database transaction and retries it when the
// store reports a lost race (deadlock, lock wait timeout, busy database or a
// unique index collision). fn must be safe to run more than once. When the
// retry budget is exhausted the last error is surfaced as ConflictRetryable.
func Transaction(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	var lastErr error
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			lastErr = db.WithContext(ctx).Transaction(fn)
			return lastErr
		},
		IsFatalError: func(err error) bool {
			return !IsRetryable(err)
		},
		NotifyFunc: func(err error, attempt int) {
			txRetries.WithLabelValues(op).Inc()
			log.L.Debug("transaction retry",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		},
		Attempts:    txAttempts,
		Delay:       txDelay,
		MaxDelay:    txMaxDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       clock.WallClock,
		Stop:        ctx.Done(),
	})
	if err == nil {
		return nil
	}
	if lastErr == nil {
		return err
	}
	if IsRetryable(lastErr) {
		txConflicts.WithLabelValues(op).Inc()
		log.L.Warn("transaction retries exhausted", zap.String("op", op), zap.Error(lastErr))
		return apperror.ConflictRetryable(op, lastErr)
	}
	return lastErr
}

// ReadSnapshot runs fn in one read-only transaction so every query it issues
// sees the same committed state. On MySQL that is a REPEATABLE READ snapshot;
// SQLite transactions are serializable already.
func ReadSnapshot(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var opts []*sql.TxOptions
	if db.Dialector.Name() == "mysql" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return db.WithContext(ctx).Transaction(fn, opts...)
}

// IsRetryable reports whether err means the transaction lost a race and
// can be replayed from scratch.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrStaleRow) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, // duplicate entry
			1205, // lock wait timeout
			1213: // deadlock
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
