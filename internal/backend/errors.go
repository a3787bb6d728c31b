package backend

import "errors"

var (
	// ErrConfiguration is returned by [Initialize] when the backend record is
	// incomplete, names an unknown driver, or is rejected by the backend.
	ErrConfiguration = errors.New("backend configuration error")
	// ErrUnknownDriver is wrapped into ErrConfiguration when no driver is
	// registered under the configured name.
	ErrUnknownDriver = errors.New("unknown backend driver")

	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrPermissionDenied is returned when the caller may not access a document.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidQuery is returned for malformed queries: unknown operators,
	// invalid field names or unsupported filter values.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmailAlreadyInUse is returned on sign-up with a registered email.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrInvalidCredentials is returned on sign-in with an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword is returned on sign-up with a password the backend
	// refuses (shorter than six characters).
	ErrWeakPassword = errors.New("weak password")
	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidIDToken is returned for ID tokens that are malformed, expired,
	// revoked or belong to a deleted user.
	ErrInvalidIDToken = errors.New("invalid id token")
	// ErrNoCurrentUser is returned by CurrentUser when the context carries no
	// ID token.
	ErrNoCurrentUser = errors.New("no signed-in user")
)
