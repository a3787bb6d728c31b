package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
)

// ErrClientClosed is returned by LogEvent after Close.
var ErrClientClosed = errors.New("analytics client is closed")

// analyticsRepository implements [backend.AnalyticsClient] by appending
// events to the analytics_events table.
type analyticsRepository struct {
	db     *DB
	closed atomic.Bool
	now    func() time.Time
	logger *logger.Logger
}

// NewAnalyticsRepository constructs a [backend.AnalyticsClient] backed by db.
func NewAnalyticsRepository(db *DB, logger *logger.Logger) backend.AnalyticsClient {
	return &analyticsRepository{db: db, now: storeNow, logger: logger}
}

// LogEvent implements [backend.AnalyticsClient].
func (r *analyticsRepository) LogEvent(ctx context.Context, name string, params map[string]any) error {
	if r.closed.Load() {
		return ErrClientClosed
	}

	if params == nil {
		params = map[string]any{}
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error encoding event params: %w", err)
	}

	query, args, err := buildInsertEventQuery(r.db.builder, name, string(encoded), r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*analyticsRepository.LogEvent").Str("event", name).Msg("error storing analytics event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Close implements [backend.AnalyticsClient]. The connection pool is shared
// with the other clients and closed by the backend app.
func (r *analyticsRepository) Close() error {
	r.closed.Store(true)
	return nil
}
