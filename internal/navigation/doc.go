// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package navigation maps URL paths to views.
//
// A [Table] is the ordered, immutable list of routes of the application,
// validated once at startup. Matching is delegated to a chi router built from
// the table: static segments beat parameter segments and a ":name" segment
// captures one path segment under name.
//
// Two navigation front-ends share a table:
//   - [History] is the per-client navigation state machine (push, replace,
//     back, forward) that mounts and unmounts views;
//   - [Controller] is an http.Handler where every request is a navigation
//     that mounts the matching view for the duration of the request.
package navigation
