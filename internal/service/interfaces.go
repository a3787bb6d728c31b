package service

import (
	"context"

	"github.com/MKhiriev/mini-capstone/models"
)

// AccountService signs users up, in and out.
type AccountService interface {
	Register(ctx context.Context, credentials models.Credentials) (models.UserCredential, error)
	Login(ctx context.Context, credentials models.Credentials) (models.UserCredential, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
}

// PostService reads and writes blog posts.
type PostService interface {
	Create(ctx context.Context, author models.User, post models.Post) (models.Post, error)
	List(ctx context.Context, limit int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error)
}

// AuthorService reads author profiles.
type AuthorService interface {
	List(ctx context.Context) ([]models.Author, error)
	Get(ctx context.Context, authorID string) (models.Author, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
