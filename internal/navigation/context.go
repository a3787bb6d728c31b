package navigation

import (
	"context"
	"net/http"
)

type contextKey struct{}

// WithMatch returns a copy of ctx carrying m.
func WithMatch(ctx context.Context, m Match) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// MatchFromContext returns the match stored by [WithMatch].
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(contextKey{}).(Match)
	return m, ok
}

// Param returns the route parameter name of the request's navigation, or "".
func Param(r *http.Request, name string) string {
	m, _ := MatchFromContext(r.Context())
	return m.Param(name)
}
