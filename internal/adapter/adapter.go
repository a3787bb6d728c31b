// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter implements the "firebase" backend driver on top of the
// managed REST services of the backend project:
//
//   - the identity REST API (accounts:signUp, accounts:signInWithPassword,
//     accounts:lookup, accounts:update) for [backend.AuthClient];
//   - the document database REST API (documents, :runQuery) for
//     [backend.DocumentStore];
//   - the analytics Measurement Protocol for [backend.AnalyticsClient].
//
// The driver registers itself on import:
//
//	import _ "github.com/MKhiriev/mini-capstone/internal/adapter"
//
// REST errors are mapped by mapIdentityError and mapDocumentError onto the
// sentinel values of package backend so that callers can use [errors.Is]
// independently of the driver.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/utils"
)

// DriverName is the name the driver registers under.
const DriverName = config.DriverFirebase

func init() {
	backend.Register(DriverName, &driver{})
}

type driver struct{}

// Analytics implements [backend.Driver].
func (d *driver) Analytics(ctx context.Context, app *backend.App) (backend.AnalyticsClient, error) {
	cfg := app.Config().Backend
	client, err := sharedHTTPClient(app, "firebase.analytics", cfg.Endpoints.Analytics, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newAnalyticsClient(client, cfg, app.Logger()), nil
}

// DocumentStore implements [backend.Driver].
func (d *driver) DocumentStore(ctx context.Context, app *backend.App) (backend.DocumentStore, error) {
	cfg := app.Config().Backend
	client, err := sharedHTTPClient(app, "firebase.firestore", cfg.Endpoints.Firestore, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newDocumentStore(client, cfg, app.Logger()), nil
}

// Auth implements [backend.Driver].
func (d *driver) Auth(ctx context.Context, app *backend.App) (backend.AuthClient, error) {
	cfg := app.Config().Backend
	client, err := sharedHTTPClient(app, "firebase.identity", cfg.Endpoints.Identity, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newIdentityClient(client, cfg, app.Logger()), nil
}

func sharedHTTPClient(app *backend.App, key, rawURL string, timeout time.Duration) (*utils.HTTPClient, error) {
	return backend.Shared(app, key, func() (*utils.HTTPClient, error) {
		baseURL, err := normalizeBaseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid %s endpoint: %w", key, err)
		}
		return utils.NewHTTPClient(baseURL, timeout), nil
	})
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
