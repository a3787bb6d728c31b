package backend

import (
	"context"
	"fmt"
	"sync"
)

type clientKind string

const (
	kindAnalytics     clientKind = "analytics"
	kindDocumentStore clientKind = "document store"
	kindAuth          clientKind = "auth"
)

// clientSlot holds the client of one kind. Its mutex serializes the first
// build so that concurrent callers observe a single instance.
type clientSlot struct {
	mu     sync.Mutex
	client any
}

// GetAnalytics returns the analytics client of app, building it on first use.
func GetAnalytics(ctx context.Context, app *App) (AnalyticsClient, error) {
	return derive(ctx, app, kindAnalytics, app.driver.Analytics)
}

// GetDocumentStore returns the document store of app, building it on first use.
func GetDocumentStore(ctx context.Context, app *App) (DocumentStore, error) {
	return derive(ctx, app, kindDocumentStore, app.driver.DocumentStore)
}

// GetAuth returns the auth client of app, building it on first use.
func GetAuth(ctx context.Context, app *App) (AuthClient, error) {
	return derive(ctx, app, kindAuth, app.driver.Auth)
}

func derive[T any](ctx context.Context, app *App, kind clientKind, build func(context.Context, *App) (T, error)) (T, error) {
	slot := app.slot(kind)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.client != nil {
		return slot.client.(T), nil
	}

	client, err := build(ctx, app)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("error building %s client: %w", kind, err)
	}

	slot.client = client
	app.logger.Debug().Str("driver", app.driverName).Str("kind", string(kind)).Msg("backend client ready")

	return client, nil
}

func (a *App) slot(kind clientKind) *clientSlot {
	a.clientsMu.Lock()
	defer a.clientsMu.Unlock()

	s, ok := a.clients[kind]
	if !ok {
		s = &clientSlot{}
		a.clients[kind] = s
	}
	return s
}
