package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
	myHTTP "github.com/MKhiriev/mini-capstone/internal/handler/http"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/server"
	"github.com/MKhiriev/mini-capstone/internal/service"
	"github.com/MKhiriev/mini-capstone/models"

	// backend drivers
	_ "github.com/MKhiriev/mini-capstone/internal/adapter"
	_ "github.com/MKhiriev/mini-capstone/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mini-capstone")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("driver", cfg.Backend.Driver).
		Str("project_id", cfg.Backend.ProjectID).
		Str("address", cfg.Server.HTTPAddress).
		Str("base_url", cfg.Server.BaseURL).
		Msg("received configs")

	clients, err := backend.Bootstrap(context.Background(), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error bootstrapping backend clients")
	}
	defer func() {
		if err := clients.Close(); err != nil {
			log.Err(err).Msg("error closing backend clients")
		}
	}()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(clients, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler, err := myHTTP.NewHandler(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating http handler")
	}

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
