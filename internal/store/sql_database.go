package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/migrations"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database connection pool together with the dialect specific
// pieces the repositories need: the squirrel placeholder format and the error
// classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// retryDelays are the pauses between attempts of a retryable operation.
	retryDelays []time.Duration
}

var defaultRetryDelays = []time.Duration{time.Second, 3 * time.Second, 5 * time.Second}

// Open connects to the database addressed by dsn. A postgres:// or
// postgresql:// URL (or a key=value DSN with a host) selects PostgreSQL,
// anything else is opened as a SQLite file.
func Open(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	switch dialectFromDSN(dsn) {
	case migrations.DialectPostgres:
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite3://"), "sqlite://"), log)
	}
}

func dialectFromDSN(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=") {
		return migrations.DialectPostgres
	}
	return migrations.DialectSQLite
}

// Dialect returns migrations.DialectPostgres or migrations.DialectSQLite.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs op until it succeeds, fails with a non-retryable error, or
// the retry delays are exhausted.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for _, delay := range db.retryDelays {
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying database operation")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
		err = op()
	}
	return err
}

// inTx runs fn inside a transaction, committing when fn returns nil.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
