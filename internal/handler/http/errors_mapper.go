package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/service"
	"github.com/MKhiriev/mini-capstone/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	backend.ErrDocumentNotFound:   http.StatusNotFound,
	backend.ErrPermissionDenied:   http.StatusForbidden,
	backend.ErrInvalidQuery:       http.StatusBadRequest,
	backend.ErrEmailAlreadyInUse:  http.StatusConflict,
	backend.ErrInvalidCredentials: http.StatusUnauthorized,
	backend.ErrWeakPassword:       http.StatusBadRequest,
	backend.ErrInvalidEmail:       http.StatusBadRequest,
	backend.ErrInvalidIDToken:     http.StatusUnauthorized,
	backend.ErrNoCurrentUser:      http.StatusUnauthorized,
	backend.ErrConfiguration:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// userMessages are shown on the page instead of the raw error chain. The
// first match wins, so validation errors precede the generic ones.
var userMessages = []struct {
	err     error
	message string
}{
	{validators.ErrEmptyEmail, "Enter your email address."},
	{validators.ErrEmptyPassword, "Enter your password."},
	{validators.ErrDisplayNameLong, "That name is too long."},
	{validators.ErrEmptyTitle, "Give your post a title."},
	{validators.ErrTitleTooLong, "That title is too long."},
	{validators.ErrEmptyBody, "Your post is empty."},
	{validators.ErrBodyTooLong, "That post is too long."},
	{validators.ErrEmptyAuthorID, "Unknown author."},
	{validators.ErrInvalidAuthorRef, "Unknown author."},

	{backend.ErrEmailAlreadyInUse, "An account with this email already exists."},
	{backend.ErrInvalidCredentials, "Wrong email or password."},
	{backend.ErrWeakPassword, "Password must be at least 6 characters."},
	{backend.ErrInvalidEmail, "That email address is not valid."},
	{backend.ErrInvalidIDToken, "Your session has expired, please log in again."},
	{backend.ErrNoCurrentUser, "Please log in first."},
	{backend.ErrDocumentNotFound, "Not found."},
	{backend.ErrPermissionDenied, "You are not allowed to do that."},
	{service.ErrInvalidDataProvided, "Please check the form and try again."},
}

func messageFromError(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return "Something went wrong, please try again."
}
