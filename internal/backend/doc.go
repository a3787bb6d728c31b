// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backend initializes the managed backend the blog talks to and hands
// out its clients.
//
// A backend is initialized once from the backend configuration record with
// [Initialize]. Clients of three kinds are then derived from the resulting
// [App]: a [DocumentStore], an [AuthClient] and an [AnalyticsClient]. Each kind
// is built on first use and the same instance is returned afterwards.
//
// The concrete backend is provided by a [Driver] registered under a name, in
// the style of database/sql:
//
//	import _ "github.com/MKhiriev/mini-capstone/internal/adapter" // "firebase"
//	import _ "github.com/MKhiriev/mini-capstone/internal/store"   // "sql"
//
// Most callers only need [Bootstrap], which performs every step and returns the
// two handles the views consume.
package backend
