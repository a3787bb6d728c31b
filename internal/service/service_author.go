package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/validators"
	"github.com/MKhiriev/mini-capstone/models"
)

type authorService struct {
	db        backend.DocumentStore
	validator validators.Validator

	logger *logger.Logger
}

func NewAuthorService(db backend.DocumentStore, logger *logger.Logger) AuthorService {
	return &authorService{
		db:        db,
		validator: validators.NewBlogValidator(),
		logger:    logger,
	}
}

// List returns all authors ordered by name.
func (s *authorService) List(ctx context.Context) ([]models.Author, error) {
	docs, err := s.db.Query(ctx, models.NewQuery(models.AuthorsCollection).OrderBy("name", models.Ascending))
	if err != nil {
		return nil, fmt.Errorf("error querying authors: %w", err)
	}

	authors := make([]models.Author, 0, len(docs))
	for _, doc := range docs {
		authors = append(authors, models.AuthorFromDocument(doc))
	}
	return authors, nil
}

// Get returns one author; a missing profile wraps backend.ErrDocumentNotFound.
func (s *authorService) Get(ctx context.Context, authorID string) (models.Author, error) {
	if err := s.validator.Validate(ctx, models.Author{ID: authorID}, validators.FieldAuthorID); err != nil {
		return models.Author{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	doc, err := s.db.Get(ctx, models.AuthorsCollection, authorID)
	if err != nil {
		return models.Author{}, fmt.Errorf("error getting author %q: %w", authorID, err)
	}
	return models.AuthorFromDocument(doc), nil
}
