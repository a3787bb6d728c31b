package http

import (
	"net/http"

	"github.com/MKhiriev/mini-capstone/internal/navigation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route names of the blog views.
const (
	RouteCreate      = "create"
	RoutePosts       = "posts"
	RouteRegister    = "register"
	RouteLogin       = "login"
	RouteAuthors     = "authors"
	RouteAuthPost    = "authPost"
	RouteAuthorPosts = "authorPosts"
)

// routes is the route table of the blog, in declaration order.
func (h *Handler) routes() []navigation.Route {
	return []navigation.Route{
		{Path: "/create", Name: RouteCreate, View: http.HandlerFunc(h.createView)},
		{Path: "/posts", Name: RoutePosts, View: http.HandlerFunc(h.postsView)},
		{Path: "/register", Name: RouteRegister, View: http.HandlerFunc(h.registerView)},
		{Path: "/login", Name: RouteLogin, View: http.HandlerFunc(h.loginView)},
		{Path: "/", Name: RouteAuthors, View: http.HandlerFunc(h.authorsView)},
		{Path: "/authPost", Name: RouteAuthPost, View: http.HandlerFunc(h.authPostView)},
		{Path: "/authorPosts/:authorId", Name: RouteAuthorPosts, View: http.HandlerFunc(h.authorPostsView)},
	}
}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Compress(5, "text/html", "text/plain", "application/json"))

	// service endpoints, outside the base path
	router.Get("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}).ServeHTTP)
	router.Get("/api/version", h.getServerVersion)

	// everything else is a navigation
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Post(h.basePath+"/logout", h.logout)
		r.Handle("/", h.controller)
		r.Handle("/*", h.controller)
	})

	return router
}
