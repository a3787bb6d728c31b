package navigation

import (
	"fmt"
	"net/http"
	"strings"
)

// Route is one entry of the route table.
type Route struct {
	// Path is the URL pattern. Segments starting with ':' are parameters,
	// e.g. "/authorPosts/:authorId".
	Path string

	// Name identifies the route for named navigation. Every route has one.
	Name string

	// View renders the route.
	View http.Handler
}

// Params returns the parameter names of the route path in order.
func (r Route) Params() []string {
	var names []string
	for _, segment := range splitPath(r.Path) {
		if strings.HasPrefix(segment, ":") {
			names = append(names, segment[1:])
		}
	}
	return names
}

// pattern converts the path into chi syntax: ":id" becomes "{id}".
func (r Route) pattern() string {
	segments := splitPath(r.Path)
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

// shape is the path with every parameter name erased, so that
// "/a/:x" and "/a/:y" are recognised as the same path.
func (r Route) shape() string {
	segments := splitPath(r.Path)
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = ":"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func (r Route) validate() error {
	if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, r.Path)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: path %q", ErrRouteNameMissing, r.Path)
	}
	if r.View == nil {
		return fmt.Errorf("%w: route %q", ErrViewMissing, r.Name)
	}

	seen := make(map[string]bool)
	for _, segment := range splitPath(r.Path) {
		if !strings.HasPrefix(segment, ":") {
			if strings.ContainsAny(segment, "{}*") {
				return fmt.Errorf("%w: %q in %q", ErrInvalidPath, segment, r.Path)
			}
			continue
		}
		name := segment[1:]
		if name == "" || strings.ContainsAny(name, ":{}*") {
			return fmt.Errorf("%w: %q in %q", ErrInvalidParam, segment, r.Path)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q repeated in %q", ErrInvalidParam, name, r.Path)
		}
		seen[name] = true
	}

	return nil
}

// splitPath returns the non-empty segments of path.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// cleanPath drops a trailing slash, keeping the root.
func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
