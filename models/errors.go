// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

var (
	// ErrUnsupportedValue is returned when a document field holds a Go type
	// that has no document value encoding.
	ErrUnsupportedValue = errors.New("unsupported document value")

	// ErrMalformedValue is returned when an encoded document value cannot be
	// decoded (unknown value kind or invalid payload).
	ErrMalformedValue = errors.New("malformed document value")
)
