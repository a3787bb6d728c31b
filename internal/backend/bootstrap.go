package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
)

// EventAppStart is logged to analytics once the backend is bootstrapped.
const EventAppStart = "app_start"

// Clients are the backend handles shared by the views. Only the document
// store and the auth client are exposed; analytics stays internal.
type Clients struct {
	// DB is the document database handle.
	DB DocumentStore
	// Auth is the authentication handle.
	Auth AuthClient

	app       *App
	analytics AnalyticsClient
}

// Bootstrap initializes the backend from cfg and derives all three clients.
// Analytics receives an [EventAppStart] event. Any failure is returned and
// should abort startup.
func Bootstrap(ctx context.Context, cfg config.StructuredConfig, log *logger.Logger) (*Clients, error) {
	app, err := Initialize(cfg, log)
	if err != nil {
		return nil, err
	}

	analytics, err := GetAnalytics(ctx, app)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}

	db, err := GetDocumentStore(ctx, app)
	if err != nil {
		return nil, errors.Join(err, analytics.Close(), app.Close())
	}

	auth, err := GetAuth(ctx, app)
	if err != nil {
		return nil, errors.Join(err, analytics.Close(), app.Close())
	}

	if err = analytics.LogEvent(ctx, EventAppStart, map[string]any{
		"driver":  app.Name(),
		"version": cfg.App.Version,
	}); err != nil {
		app.Logger().Warn().Err(err).Msg("failed to log app start event")
	}

	app.Logger().Info().
		Str("driver", app.Name()).
		Str("project_id", cfg.Backend.ProjectID).
		Msg("backend bootstrapped")

	return &Clients{
		DB:        db,
		Auth:      auth,
		app:       app,
		analytics: analytics,
	}, nil
}

// Close flushes analytics and releases the backend resources.
func (c *Clients) Close() error {
	var errs []error
	if c.analytics != nil {
		if err := c.analytics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing analytics: %w", err))
		}
	}
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
