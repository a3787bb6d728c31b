package backend

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
)

// App is an initialized backend. It is read-only after [Initialize] and safe
// for concurrent use.
type App struct {
	cfg        config.StructuredConfig
	driverName string
	driver     Driver
	logger     *logger.Logger

	clientsMu sync.Mutex
	clients   map[clientKind]*clientSlot

	sharedMu sync.Mutex
	shared   map[string]any
	closers  []io.Closer
}

// Initialize validates the backend configuration record and resolves its
// driver. It performs no network I/O: connections are established lazily when
// the first client is derived.
//
// Returns [ErrConfiguration] when a required field of the record is empty or
// the driver is unknown.
func Initialize(cfg config.StructuredConfig, log *logger.Logger) (*App, error) {
	if err := cfg.Backend.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	name := cfg.Backend.Driver
	if name == "" {
		name = config.DriverFirebase
	}

	driver, err := lookupDriver(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &App{
		cfg:        cfg,
		driverName: name,
		driver:     driver,
		logger:     log,
		clients:    make(map[clientKind]*clientSlot),
		shared:     make(map[string]any),
	}, nil
}

// Name returns the name of the driver serving the app.
func (a *App) Name() string {
	return a.driverName
}

// Config returns the configuration the app was initialized with.
func (a *App) Config() config.StructuredConfig {
	return a.cfg
}

// Logger returns the app logger. Drivers use it for their own diagnostics.
func (a *App) Logger() *logger.Logger {
	return a.logger
}

// Shared returns the app-wide resource stored under key, opening it with open
// on first use. Drivers use it to share a connection pool or an HTTP client
// between the clients of one app. Resources implementing io.Closer are closed
// by [App.Close] in reverse order of creation.
//
// An open error is returned as is and nothing is stored, so a later call
// retries.
func Shared[T any](a *App, key string, open func() (T, error)) (T, error) {
	a.sharedMu.Lock()
	defer a.sharedMu.Unlock()

	if v, ok := a.shared[key]; ok {
		typed, ok := v.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("backend: shared resource %q has type %T", key, v)
		}
		return typed, nil
	}

	v, err := open()
	if err != nil {
		var zero T
		return zero, err
	}

	a.shared[key] = v
	if closer, ok := any(v).(io.Closer); ok {
		a.closers = append(a.closers, closer)
	}

	return v, nil
}

// Close releases every shared resource of the app. Derived clients must not
// be used afterwards.
func (a *App) Close() error {
	a.sharedMu.Lock()
	defer a.sharedMu.Unlock()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	a.shared = make(map[string]any)

	return errors.Join(errs...)
}
