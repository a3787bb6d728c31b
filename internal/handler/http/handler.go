package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/navigation"
	"github.com/MKhiriev/mini-capstone/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services   *service.Services
	controller *navigation.Controller
	templates  map[string]*template.Template
	registry   *prometheus.Registry

	// basePath is the base URL without its trailing slash, "" for the root.
	basePath string

	logger *logger.Logger
}

// NewHandler parses the templates, validates the route table and builds the
// navigation controller under cfg.BaseURL.
func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handler, error) {
	h := &Handler{
		services: services,
		registry: prometheus.NewRegistry(),
		basePath: strings.TrimRight(cfg.BaseURL, "/"),
		logger:   logger,
	}

	templates, err := parseTemplates(h.templateFuncs())
	if err != nil {
		return nil, err
	}
	h.templates = templates

	table, err := navigation.NewTable(h.routes()...)
	if err != nil {
		return nil, fmt.Errorf("error building route table: %w", err)
	}

	h.controller = navigation.NewController(table, cfg.BaseURL,
		navigation.WithNotFound(http.HandlerFunc(h.notFound)),
		navigation.WithMetrics(navigation.NewMetrics(h.registry)),
	)

	logger.Info().Str("base_url", cfg.BaseURL).Int("routes", len(table.Routes())).Msg("http handler created")
	return h, nil
}

// Controller returns the navigation controller serving the views.
func (h *Handler) Controller() *navigation.Controller {
	return h.controller
}
