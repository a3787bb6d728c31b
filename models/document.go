// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Fields is the payload of a stored document.
//
// Supported value types are nil, bool, int/int32/int64, float32/float64,
// string, time.Time, []any, []string and nested map[string]any (or Fields).
// Integers are widened to int64 and floats to float64 when a document is read
// back, so callers should type-assert against the widened types.
type Fields map[string]any

// Document is a single record of the managed document database.
type Document struct {
	// ID is the document identifier, unique inside its collection.
	ID string `json:"id"`

	// Collection is the name of the collection the document belongs to.
	Collection string `json:"collection"`

	// Fields holds the decoded document payload.
	Fields Fields `json:"fields"`

	// CreateTime is the time the document was first written.
	CreateTime time.Time `json:"create_time"`

	// UpdateTime is the time of the most recent write.
	UpdateTime time.Time `json:"update_time"`
}

// String returns the string field name, or "" when it is missing or of a
// different type.
func (d Document) String(name string) string {
	v, _ := d.Fields[name].(string)
	return v
}

// Time returns the timestamp field name, or the zero time when it is missing
// or of a different type.
func (d Document) Time(name string) time.Time {
	v, _ := d.Fields[name].(time.Time)
	return v
}
