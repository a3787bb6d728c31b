// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the "sql" backend driver on a relational
// database: PostgreSQL through pgx or SQLite through go-sqlite3, selected by
// the DSN.
//
// The driver registers itself on import:
//
//	import _ "github.com/MKhiriev/mini-capstone/internal/store"
//
// All three clients of one backend app share a single connection pool, which
// is opened and migrated when the first client is derived. Queries are built
// with squirrel so that the same builders serve both placeholder styles.
package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
)

// DriverName is the name the driver registers under.
const DriverName = config.DriverSQL

const sharedDBKey = "sql.db"

func init() {
	backend.Register(DriverName, &driver{})
}

type driver struct{}

// Analytics implements [backend.Driver].
func (d *driver) Analytics(ctx context.Context, app *backend.App) (backend.AnalyticsClient, error) {
	db, err := sharedDB(ctx, app)
	if err != nil {
		return nil, err
	}
	return NewAnalyticsRepository(db, app.Logger()), nil
}

// DocumentStore implements [backend.Driver].
func (d *driver) DocumentStore(ctx context.Context, app *backend.App) (backend.DocumentStore, error) {
	db, err := sharedDB(ctx, app)
	if err != nil {
		return nil, err
	}
	return NewDocumentRepository(db, app.Logger()), nil
}

// Auth implements [backend.Driver]. ID tokens are issued for the backend
// project and the application ID.
func (d *driver) Auth(ctx context.Context, app *backend.App) (backend.AuthClient, error) {
	cfg := app.Config()
	if cfg.App.TokenSignKey == "" {
		return nil, fmt.Errorf("%w: %w", backend.ErrConfiguration, ErrMissingSignKey)
	}

	db, err := sharedDB(ctx, app)
	if err != nil {
		return nil, err
	}

	duration := cfg.App.TokenDuration
	if duration <= 0 {
		duration = config.DefaultTokenDuration
	}

	return NewAccountRepository(db, TokenSettings{
		SignKey:  cfg.App.TokenSignKey,
		Issuer:   cfg.Backend.ProjectID,
		Audience: cfg.Backend.AppID,
		Duration: duration,
	}, app.Logger()), nil
}

func sharedDB(ctx context.Context, app *backend.App) (*DB, error) {
	dsn := app.Config().Storage.DB.DSN
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty database DSN", backend.ErrConfiguration)
	}

	return backend.Shared(app, sharedDBKey, func() (*DB, error) {
		db, err := Open(ctx, dsn, app.Logger())
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	})
}
