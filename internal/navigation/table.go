package navigation

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Table is an immutable, validated route table. It is safe for concurrent
// use.
type Table struct {
	routes    []Route
	byName    map[string]int
	byPattern map[string]int
	mux       *chi.Mux
}

// Match is the result of resolving a path against a [Table].
type Match struct {
	// Route is the matched route.
	Route Route

	// Path is the cleaned path that was matched.
	Path string

	// Params holds the captured parameter values by name.
	Params map[string]string
}

// Param returns the value captured for name, or "".
func (m Match) Param(name string) string {
	return m.Params[name]
}

// NewTable validates routes and builds a table from them, keeping their
// order. It fails on the first route that:
//   - has an empty path or one not starting with '/' ([ErrInvalidPath]);
//   - has an unnamed or malformed parameter segment ([ErrInvalidParam]);
//   - has no name ([ErrRouteNameMissing]);
//   - reuses a name ([ErrDuplicateRouteName]) or a path ([ErrDuplicatePath]);
//   - has no view ([ErrViewMissing]).
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes:    make([]Route, 0, len(routes)),
		byName:    make(map[string]int, len(routes)),
		byPattern: make(map[string]int, len(routes)),
		mux:       chi.NewRouter(),
	}

	shapes := make(map[string]string, len(routes))
	for i, r := range routes {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("route #%d: %w", i, err)
		}
		r.Path = cleanPath(r.Path)

		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("route #%d: %w: %q", i, ErrDuplicateRouteName, r.Name)
		}
		if other, dup := shapes[r.shape()]; dup {
			return nil, fmt.Errorf("route #%d: %w: %q (already used by %q)", i, ErrDuplicatePath, r.Path, other)
		}

		shapes[r.shape()] = r.Name
		t.byName[r.Name] = len(t.routes)
		t.byPattern[r.pattern()] = len(t.routes)
		// the router only tells which pattern matched, the view is served
		// by the caller
		t.mux.Handle(r.pattern(), http.NotFoundHandler())
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// MustNewTable is like [NewTable] but panics on an invalid table. It is meant
// for package-level route tables.
func MustNewTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic("navigation: " + err.Error())
	}
	return t
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Route returns the route named name.
func (t *Table) Route(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Match resolves path to at most one route. A trailing slash is ignored and
// matching is case-sensitive.
func (t *Table) Match(path string) (Match, bool) {
	path = cleanPath(path)

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, false
	}

	patterns := rctx.RoutePatterns
	if len(patterns) == 0 {
		return Match{}, false
	}
	i, ok := t.byPattern[patterns[len(patterns)-1]]
	if !ok {
		return Match{}, false
	}

	route := t.routes[i]
	params := make(map[string]string)
	for _, name := range route.Params() {
		params[name] = rctx.URLParam(name)
	}

	return Match{Route: route, Path: path, Params: params}, true
}

// URL builds the path of the route named name, substituting params. Values
// are path-escaped.
func (t *Table) URL(name string, params map[string]string) (string, error) {
	route, ok := t.Route(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	segments := splitPath(route.Path)
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		value, ok := params[segment[1:]]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, segment[1:], name)
		}
		segments[i] = url.PathEscape(value)
	}

	return "/" + strings.Join(segments, "/"), nil
}
