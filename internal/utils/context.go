// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, ID token generation
// and validation, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IDTokenCtxKey is the key used to store the caller's ID token in the
// context. Backend auth clients read it to resolve the current user, and the
// document store forwards it as the bearer credential.
var IDTokenCtxKey = contextKey("idToken")

// WithIDToken returns a copy of ctx carrying idToken.
//
// Example usage:
//
//	ctx := utils.WithIDToken(r.Context(), cookie.Value)
func WithIDToken(ctx context.Context, idToken string) context.Context {
	return context.WithValue(ctx, IDTokenCtxKey, idToken)
}

// IDTokenFromContext retrieves the ID token stored by [WithIDToken].
//
// Returns the token and an ok flag:
//   - ok == true  — a non-empty token string is present
//   - ok == false — value is missing, empty, or has an unexpected type
func IDTokenFromContext(ctx context.Context) (string, bool) {
	idToken, ok := ctx.Value(IDTokenCtxKey).(string)
	return idToken, ok && idToken != ""
}
