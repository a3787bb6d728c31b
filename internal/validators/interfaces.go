// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks view input before it reaches the backend.
//
// The checks are presence and length rules only. Anything the backend
// enforces itself (email syntax, password strength, uniqueness) is left to
// the backend so its error is the one the user sees.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
