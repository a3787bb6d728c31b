package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/models"
)

// sessionCookieName is the cookie carrying the backend ID token.
const sessionCookieName = "mc_session"

// withSession puts the caller's ID token into the request context. The
// session cookie wins over an "Authorization: Bearer" header. Requests
// without either pass through anonymously; a malformed header is rejected.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			next.ServeHTTP(w, r.WithContext(utils.WithIDToken(r.Context(), cookie.Value)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			logger.FromRequest(r).Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIDToken(r.Context(), token)))
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func (h *Handler) cookiePath() string {
	if h.basePath == "" {
		return "/"
	}
	return h.basePath
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, credential models.UserCredential) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    credential.IDToken,
		Path:     h.cookiePath(),
		MaxAge:   int(credential.ExpiresIn / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     h.cookiePath(),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
