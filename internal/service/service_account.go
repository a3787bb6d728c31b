// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/internal/validators"
	"github.com/MKhiriev/mini-capstone/models"
)

// accountService signs users in through the backend auth client and keeps
// an author profile document per account.
type accountService struct {
	auth      backend.AuthClient
	db        backend.DocumentStore
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewAccountService(auth backend.AuthClient, db backend.DocumentStore, logger *logger.Logger) AccountService {
	return &accountService{
		auth:      auth,
		db:        db,
		validator: validators.NewBlogValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Register creates the account, sets its display name and writes the
// author profile. A blank display name falls back to the local part of the
// email.
func (s *accountService) Register(ctx context.Context, credentials models.Credentials) (models.UserCredential, error) {
	if err := s.validator.Validate(ctx, credentials, validators.FieldEmail, validators.FieldPassword, validators.FieldDisplayName); err != nil {
		return models.UserCredential{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	credential, err := s.auth.CreateUserWithEmailAndPassword(ctx, credentials.Email, credentials.Password)
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("error creating account: %w", err)
	}

	name := strings.TrimSpace(credentials.DisplayName)
	if name == "" {
		name = displayNameFromEmail(credential.User.Email)
	}

	user, err := s.auth.UpdateProfile(ctx, credential.IDToken, name)
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("error setting display name: %w", err)
	}
	credential.User = user

	author := models.Author{
		ID:        user.UID,
		Name:      name,
		Email:     user.Email,
		CreatedAt: s.now().UTC(),
	}
	// profile writes are authorized as the new user
	if _, err = s.db.Set(utils.WithIDToken(ctx, credential.IDToken), models.AuthorsCollection, author.ID, author.Fields()); err != nil {
		return models.UserCredential{}, fmt.Errorf("error saving author profile: %w", err)
	}

	s.logger.Info().Str("uid", user.UID).Msg("account registered")
	return credential, nil
}

func (s *accountService) Login(ctx context.Context, credentials models.Credentials) (models.UserCredential, error) {
	if err := s.validator.Validate(ctx, credentials); err != nil {
		return models.UserCredential{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	credential, err := s.auth.SignInWithEmailAndPassword(ctx, credentials.Email, credentials.Password)
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("error signing in: %w", err)
	}

	return credential, nil
}

func (s *accountService) Logout(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return fmt.Errorf("error signing out: %w", err)
	}
	return nil
}

func (s *accountService) CurrentUser(ctx context.Context) (models.User, error) {
	return s.auth.CurrentUser(ctx)
}

func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
