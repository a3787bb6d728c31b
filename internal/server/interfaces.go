package server

import "context"

// Server defines the lifecycle contract of the servers managed by this
// package.
type Server interface {
	// RunServer starts serving requests and blocks until a stop signal
	// arrives and shutdown completes.
	RunServer()

	// Run serves until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context)
}
