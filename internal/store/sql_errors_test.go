package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"plain error", errors.New("boom"), NonRetryable},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Retryable},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Retryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"wrapped deadlock", fmt.Errorf("tx: %w", pgError(pgerrcode.DeadlockDetected)), Retryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"syntax error", pgError(pgerrcode.SyntaxError), NonRetryable},
		{"unknown code", pgError("XX999"), NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.False(t, isUniqueViolation(pgError(pgerrcode.ForeignKeyViolation)))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

// ── retry ─────────────────────────────────────────────────────────────────────

func TestWithRetry(t *testing.T) {
	db := &DB{
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
		retryDelays:        []time.Duration{time.Millisecond, time.Millisecond},
	}
	ctx := context.Background()

	t.Run("retryable error is retried until success", func(t *testing.T) {
		calls := 0
		err := db.withRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return pgError(pgerrcode.ConnectionFailure)
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("attempts are bounded", func(t *testing.T) {
		calls := 0
		err := db.withRetry(ctx, func() error {
			calls++
			return pgError(pgerrcode.DeadlockDetected)
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returns at once", func(t *testing.T) {
		calls := 0
		err := db.withRetry(ctx, func() error {
			calls++
			return pgError(pgerrcode.UniqueViolation)
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		slow := &DB{
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             logger.Nop(),
			retryDelays:        []time.Duration{time.Hour},
		}
		err := slow.withRetry(cancelled, func() error {
			return pgError(pgerrcode.ConnectionFailure)
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
