package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Driver builds the clients of one backend implementation. Every method is
// called at most once per [App] and kind, under the derivation lock.
type Driver interface {
	Analytics(ctx context.Context, app *App) (AnalyticsClient, error)
	DocumentStore(ctx context.Context, app *App) (DocumentStore, error)
	Auth(ctx context.Context, app *App) (AuthClient, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a backend driver available by the provided name.
// If Register is called twice with the same name or if driver is nil,
// it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("backend: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("backend: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	return namesLocked()
}

func lookupDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	driver, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownDriver, name, namesLocked())
	}
	return driver, nil
}

func namesLocked() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
