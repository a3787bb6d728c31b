package service

import (
	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/models"
)

// DefaultPageSize caps post listings when the caller passes no limit.
const DefaultPageSize = 50

type Services struct {
	AccountService AccountService
	PostService    PostService
	AuthorService  AuthorService
	AppInfoService AppInfoService
}

func NewServices(clients *backend.Clients, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AccountService: NewAccountService(clients.Auth, clients.DB, logger),
		PostService:    NewPostService(clients.DB, logger),
		AuthorService:  NewAuthorService(clients.DB, logger),
		AppInfoService: appInfoService,
	}, nil
}
