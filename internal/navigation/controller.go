package navigation

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/logger"
)

// Controller serves a route table over HTTP. Every request is a navigation:
// it opens a one-entry [History] at the request path, serves the mounted view
// with the [Match] in the request context, and unmounts the view afterwards.
//
// Requests outside the base path or matching no route are passed to the
// not-found handler (404 by default).
type Controller struct {
	table    *Table
	base     string
	notFound http.Handler
	metrics  *Metrics
}

// ControllerOption configures a [Controller].
type ControllerOption func(*Controller)

// WithNotFound sets the handler for unmatched requests.
func WithNotFound(h http.Handler) ControllerOption {
	return func(c *Controller) {
		c.notFound = h
	}
}

// WithMetrics records every navigation in m.
func WithMetrics(m *Metrics) ControllerOption {
	return func(c *Controller) {
		c.metrics = m
	}
}

// NewController returns a controller serving table under base, e.g. "/" or
// "/blog/".
func NewController(table *Table, base string, opts ...ControllerOption) *Controller {
	c := &Controller{
		table:    table,
		base:     normalizeBase(base),
		notFound: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizeBase turns "", "/", "blog", "/blog/" into "" or "/blog".
func normalizeBase(base string) string {
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// Table returns the served route table.
func (c *Controller) Table() *Table {
	return c.table
}

// URL builds the absolute path of the route named name, including the base.
func (c *Controller) URL(name string, params map[string]string) (string, error) {
	path, err := c.table.URL(name, params)
	if err != nil {
		return "", err
	}
	if c.base == "" {
		return path, nil
	}
	if path == "/" {
		return c.base + "/", nil
	}
	return c.base + path, nil
}

// stripBase returns the path relative to the base and whether path lies
// under it.
func (c *Controller) stripBase(path string) (string, bool) {
	if c.base == "" {
		return path, true
	}
	if path == c.base {
		return "/", true
	}
	if rest, ok := strings.CutPrefix(path, c.base+"/"); ok {
		return "/" + rest, true
	}
	return "", false
}

// Resolve matches a request path, base included, without mounting anything.
func (c *Controller) Resolve(path string) (Match, bool) {
	rel, ok := c.stripBase(path)
	if !ok {
		return Match{}, false
	}
	return c.table.Match(rel)
}

// ServeHTTP implements http.Handler.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	start := time.Now()

	path, ok := c.stripBase(r.URL.Path)
	if !ok {
		c.metrics.observe(notFoundLabel, 0)
		c.notFound.ServeHTTP(w, r)
		return
	}

	history, err := NewHistory(r.Context(), c.table, path)
	if err != nil {
		log.Err(err).Str("func", "*Controller.ServeHTTP").Str("path", path).Msg("error mounting view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer history.Close(r.Context())

	loc := history.Current()
	if !loc.Matched {
		c.metrics.observe(notFoundLabel, 0)
		c.notFound.ServeHTTP(w, r)
		return
	}

	log.Debug().Str("route", loc.Match.Route.Name).Str("path", path).Msg("navigation")

	loc.Match.Route.View.ServeHTTP(w, r.WithContext(WithMatch(r.Context(), loc.Match)))
	c.metrics.observe(loc.Match.Route.Name, time.Since(start))
}
