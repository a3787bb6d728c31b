package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Shared templates parsed into every page.
const (
	layoutTemplate   = "templates/layout.html"
	partialsTemplate = "templates/partials.html"
)

// Page templates.
const (
	pageAuthors     = "authors.html"
	pagePosts       = "posts.html"
	pageAuthorPosts = "author_posts.html"
	pageAuthPost    = "auth_post.html"
	pageCreate      = "create.html"
	pageLogin       = "login.html"
	pageRegister    = "register.html"
	pageError       = "error.html"
)

// pageData is the root value of every page template.
type pageData struct {
	Title string
	User  *models.User
	Error string
	Form  formData

	Posts   []models.Post
	Authors []models.Author
	Author  models.Author
}

// formData echoes submitted form values back. Passwords are never echoed.
type formData struct {
	Email       string
	DisplayName string
	Title       string
	Body        string
}

// parseTemplates parses every page together with the layout and partials.
func parseTemplates(funcs template.FuncMap) (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutTemplate || file == partialsTemplate {
			continue
		}
		name := path.Base(file)
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutTemplate, partialsTemplate, file)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// templateFuncs resolve links through the navigation controller so every
// href carries the base path.
func (h *Handler) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url": func(name string, pairs ...string) (string, error) {
			if len(pairs)%2 != 0 {
				return "", fmt.Errorf("url %q: odd number of parameter arguments", name)
			}
			params := make(map[string]string, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				params[pairs[i]] = pairs[i+1]
			}
			return h.controller.URL(name, params)
		},
		"path": func(p string) string {
			return h.basePath + p
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 Jan 2006")
		},
	}
}

// render executes page into a buffer first so a template error still
// produces a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	log := logger.FromRequest(r)

	t, ok := h.templates[page]
	if !ok {
		log.Error().Str("func", "*Handler.render").Str("page", page).Msg("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("func", "*Handler.render").Str("page", page).Msg("error executing template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
