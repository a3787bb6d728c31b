package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/validators"
	"github.com/MKhiriev/mini-capstone/models"
)

type postService struct {
	db        backend.DocumentStore
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewPostService(db backend.DocumentStore, logger *logger.Logger) PostService {
	return &postService{
		db:        db,
		validator: validators.NewBlogValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Create stores post as written by author. Author fields and the creation
// time set by the caller are overwritten.
func (s *postService) Create(ctx context.Context, author models.User, post models.Post) (models.Post, error) {
	post.AuthorID = author.UID
	post.AuthorName = author.DisplayName
	if post.AuthorName == "" {
		post.AuthorName = displayNameFromEmail(author.Email)
	}
	post.CreatedAt = s.now().UTC()

	if err := s.validator.Validate(ctx, post, validators.FieldTitle, validators.FieldBody, validators.FieldAuthorID, validators.FieldAuthorName); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	doc, err := s.db.Add(ctx, models.PostsCollection, post.Fields())
	if err != nil {
		return models.Post{}, fmt.Errorf("error saving post: %w", err)
	}

	s.logger.Debug().Str("post_id", doc.ID).Str("author_id", post.AuthorID).Msg("post created")
	return models.PostFromDocument(doc), nil
}

// List returns the newest posts first.
func (s *postService) List(ctx context.Context, limit int) ([]models.Post, error) {
	q := models.NewQuery(models.PostsCollection).
		OrderBy("createdAt", models.Descending).
		WithLimit(pageSize(limit))

	return s.query(ctx, q)
}

// ListByAuthor returns the posts of one author, newest first.
func (s *postService) ListByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error) {
	if err := s.validator.Validate(ctx, models.Post{AuthorID: authorID}, validators.FieldAuthorID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	q := models.NewQuery(models.PostsCollection).
		Where("authorId", models.OpEqual, authorID).
		OrderBy("createdAt", models.Descending).
		WithLimit(pageSize(limit))

	return s.query(ctx, q)
}

func (s *postService) query(ctx context.Context, q models.Query) ([]models.Post, error) {
	docs, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, models.PostFromDocument(doc))
	}
	return posts, nil
}

func pageSize(limit int) int {
	if limit <= 0 || limit > DefaultPageSize {
		return DefaultPageSize
	}
	return limit
}
