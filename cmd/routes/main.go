// Command routes inspects the blog's route table: it lists the routes,
// resolves a path to its view and builds named URLs, the same way the
// server's navigation controller does.
package main

import (
	"os"

	"github.com/MKhiriev/mini-capstone/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger("routes")
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("routes failed")
		os.Exit(1)
	}
}
