package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail       = errors.New("email is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrDisplayNameLong  = errors.New("display name is too long")
	ErrEmptyTitle       = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title is too long")
	ErrEmptyBody        = errors.New("body is required")
	ErrBodyTooLong      = errors.New("body is too long")
	ErrEmptyAuthorID    = errors.New("author ID is required")
	ErrEmptyAuthorName  = errors.New("author name is required")
	ErrInvalidAuthorRef = errors.New("author ID must not contain '/'")
)
