package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/mini-capstone/models"
)

// Field names accepted by [BlogValidator.Validate].
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldTitle       = "title"
	FieldBody        = "body"
	FieldAuthorID    = "author_id"
	FieldAuthorName  = "author_name"
)

// Length limits, counted in runes.
const (
	MaxDisplayNameLength = 64
	MaxTitleLength       = 200
	MaxBodyLength        = 20000
)

// BlogValidator validates [models.Credentials], [models.Post] and
// [models.Author] values, by value or pointer.
type BlogValidator struct{}

func NewBlogValidator() Validator {
	return &BlogValidator{}
}

// Validate dispatches on the dynamic type of obj. Without fields a default
// set per type is checked. Unsupported types fail with [ErrUnsupportedType].
func (v *BlogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.Post:
		return v.validatePost(value, fields...)
	case *models.Post:
		return v.validatePost(*value, fields...)

	case models.Author:
		return v.validateAuthor(value, fields...)
	case *models.Author:
		return v.validateAuthor(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateCredentials defaults to email and password. The display name is
// optional and only length-checked.
func (v *BlogValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if isBlank(c.Email) {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		case FieldDisplayName:
			if utf8.RuneCountInString(c.DisplayName) > MaxDisplayNameLength {
				return ErrDisplayNameLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validatePost(p models.Post, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldBody, FieldAuthorID}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if isBlank(p.Title) {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(p.Title) > MaxTitleLength {
				return ErrTitleTooLong
			}
		case FieldBody:
			if isBlank(p.Body) {
				return ErrEmptyBody
			}
			if utf8.RuneCountInString(p.Body) > MaxBodyLength {
				return ErrBodyTooLong
			}
		case FieldAuthorID:
			if err := validateAuthorID(p.AuthorID); err != nil {
				return err
			}
		case FieldAuthorName:
			if isBlank(p.AuthorName) {
				return ErrEmptyAuthorName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validateAuthor(a models.Author, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAuthorID, FieldAuthorName}
	}

	for _, f := range fields {
		switch f {
		case FieldAuthorID:
			if err := validateAuthorID(a.ID); err != nil {
				return err
			}
		case FieldAuthorName:
			if isBlank(a.Name) {
				return ErrEmptyAuthorName
			}
			if utf8.RuneCountInString(a.Name) > MaxDisplayNameLength {
				return ErrDisplayNameLong
			}
		case FieldEmail:
			if isBlank(a.Email) {
				return ErrEmptyEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAuthorID rejects IDs that would escape the document path.
func validateAuthorID(id string) error {
	if isBlank(id) {
		return ErrEmptyAuthorID
	}
	if strings.Contains(id, "/") {
		return ErrInvalidAuthorRef
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
