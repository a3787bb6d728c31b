package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/navigation"
	"github.com/MKhiriev/mini-capstone/models"
)

// authorsView lists all authors. It is the home page.
func (h *Handler) authorsView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	authors, err := h.services.AuthorService.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageAuthors, pageData{
		Title:   "Authors",
		User:    h.currentUser(r),
		Authors: authors,
	})
}

// postsView lists the newest posts of every author.
func (h *Handler) postsView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	posts, err := h.services.PostService.List(r.Context(), 0)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pagePosts, pageData{
		Title: "Posts",
		User:  h.currentUser(r),
		Posts: posts,
	})
}

// authorPostsView lists the posts of the author captured from the path.
func (h *Handler) authorPostsView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()
	authorID := navigation.Param(r, "authorId")

	author, err := h.services.AuthorService.Get(ctx, authorID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListByAuthor(ctx, authorID, 0)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageAuthorPosts, pageData{
		Title:  author.Name,
		User:   h.currentUser(r),
		Author: author,
		Posts:  posts,
	})
}

// authPostView lists the signed-in user's own posts.
func (h *Handler) authPostView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	user := h.currentUser(r)
	if user == nil {
		h.redirect(w, r, RouteLogin)
		return
	}

	posts, err := h.services.PostService.ListByAuthor(r.Context(), user.UID, 0)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageAuthPost, pageData{
		Title: "My posts",
		User:  user,
		Posts: posts,
	})
}

// createView shows the post form and publishes it on POST.
func (h *Handler) createView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	user := h.currentUser(r)
	if user == nil {
		h.redirect(w, r, RouteLogin)
		return
	}

	data := pageData{Title: "New post", User: user}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, pageCreate, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		h.render(w, r, http.StatusBadRequest, pageCreate, data)
		return
	}
	data.Form = formData{
		Title: strings.TrimSpace(r.PostFormValue("title")),
		Body:  strings.TrimSpace(r.PostFormValue("body")),
	}

	_, err := h.services.PostService.Create(r.Context(), *user, models.Post{
		Title: data.Form.Title,
		Body:  data.Form.Body,
	})
	if err != nil {
		h.renderFormError(w, r, pageCreate, data, err)
		return
	}

	h.redirect(w, r, RouteAuthPost)
}

// registerView shows the sign-up form and creates the account on POST.
func (h *Handler) registerView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	data := pageData{Title: "Register", User: h.currentUser(r)}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, pageRegister, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		h.render(w, r, http.StatusBadRequest, pageRegister, data)
		return
	}
	credentials := models.Credentials{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		DisplayName: strings.TrimSpace(r.PostFormValue("display_name")),
	}
	data.Form = formData{Email: credentials.Email, DisplayName: credentials.DisplayName}

	credential, err := h.services.AccountService.Register(r.Context(), credentials)
	if err != nil {
		h.renderFormError(w, r, pageRegister, data, err)
		return
	}

	h.setSessionCookie(w, credential)
	h.redirect(w, r, RouteAuthors)
}

// loginView shows the sign-in form and signs in on POST.
func (h *Handler) loginView(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	data := pageData{Title: "Log in", User: h.currentUser(r)}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, pageLogin, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		h.render(w, r, http.StatusBadRequest, pageLogin, data)
		return
	}
	credentials := models.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data.Form = formData{Email: credentials.Email}

	credential, err := h.services.AccountService.Login(r.Context(), credentials)
	if err != nil {
		h.renderFormError(w, r, pageLogin, data, err)
		return
	}

	h.setSessionCookie(w, credential)
	h.redirect(w, r, RouteAuthors)
}

// logout ends the backend session and drops the cookie. Backend failures
// are logged; the cookie is cleared regardless.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AccountService.Logout(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.logout").Msg("error signing out")
	}

	h.clearSessionCookie(w)
	h.redirect(w, r, RouteLogin)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageError, pageData{
		Title: "Page not found",
		User:  h.currentUser(r),
	})
}

// currentUser returns the signed-in user, or nil for anonymous requests and
// sessions the backend no longer accepts.
func (h *Handler) currentUser(r *http.Request) *models.User {
	user, err := h.services.AccountService.CurrentUser(r.Context())
	if err != nil {
		if !errors.Is(err, backend.ErrNoCurrentUser) {
			logger.FromRequest(r).Debug().Err(err).Msg("session rejected")
		}
		return nil
	}
	return &user
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("error serving view")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("view request rejected")
	}

	h.render(w, r, status, pageError, pageData{
		Title: messageFromError(err),
		User:  h.currentUser(r),
	})
}

// renderFormError re-renders a form page with the error message and the
// submitted values.
func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, page string, data pageData, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("page", page).Msg("error handling form")
	}

	data.Error = messageFromError(err)
	h.render(w, r, status, page, data)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, route string) {
	target, err := h.controller.URL(route, nil)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("route", route).Msg("error building redirect")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// allowMethods answers 405 with an Allow header for any other method.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}
