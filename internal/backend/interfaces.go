// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"

	"github.com/MKhiriev/mini-capstone/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

// DocumentStore is the document database handle.
//
// Documents live in named collections and are addressed by ID. Field values
// follow the types listed on [models.Fields].
type DocumentStore interface {
	// Add stores fields as a new document with a generated ID.
	Add(ctx context.Context, collection string, fields models.Fields) (models.Document, error)

	// Set creates or fully replaces the document collection/id.
	Set(ctx context.Context, collection, id string, fields models.Fields) (models.Document, error)

	// Get returns the document collection/id, or [ErrDocumentNotFound].
	Get(ctx context.Context, collection, id string) (models.Document, error)

	// Delete removes the document collection/id. Deleting a missing document
	// is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query returns the documents matching q, in q's order.
	Query(ctx context.Context, q models.Query) ([]models.Document, error)
}

// AuthClient is the authentication handle.
//
// The caller's ID token travels in the context (see utils.WithIDToken);
// CurrentUser and SignOut act on it.
type AuthClient interface {
	// CreateUserWithEmailAndPassword registers a new account and signs it in.
	CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error)

	// SignInWithEmailAndPassword signs an existing account in.
	SignInWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error)

	// UpdateProfile sets the display name of the account idToken belongs to.
	UpdateProfile(ctx context.Context, idToken, displayName string) (models.User, error)

	// VerifyIDToken returns the account idToken belongs to, or
	// [ErrInvalidIDToken].
	VerifyIDToken(ctx context.Context, idToken string) (models.User, error)

	// CurrentUser returns the account of the ID token carried by ctx, or
	// [ErrNoCurrentUser] when there is none.
	CurrentUser(ctx context.Context) (models.User, error)

	// SignOut ends the session of the ID token carried by ctx.
	SignOut(ctx context.Context) error
}

// AnalyticsClient is the analytics handle.
type AnalyticsClient interface {
	// LogEvent records a named event with optional parameters.
	LogEvent(ctx context.Context, name string, params map[string]any) error

	// Close flushes pending events and releases resources.
	Close() error
}
