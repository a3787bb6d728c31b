// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels wrapped with a description of the offending field.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Backend.Validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}
	if !strings.HasPrefix(cfg.Server.BaseURL, "/") {
		return fmt.Errorf("%w: base url %q must start with /", ErrInvalidServerConfigs, cfg.Server.BaseURL)
	}

	if cfg.Backend.Driver == DriverSQL {
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: sql driver requires a database DSN", ErrInvalidStorageConfigs)
		}
		if cfg.App.TokenSignKey == "" {
			return fmt.Errorf("%w: sql driver requires a token sign key", ErrInvalidAppConfigs)
		}
	}

	return nil
}

// Validate reports whether the backend configuration record is complete:
// every identity field must be a non-empty string.
func (b Backend) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"api key", b.APIKey},
		{"auth domain", b.AuthDomain},
		{"project id", b.ProjectID},
		{"storage bucket", b.StorageBucket},
		{"messaging sender id", b.MessagingSenderID},
		{"app id", b.AppID},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidBackendConfigs, field.name)
		}
	}

	return nil
}
