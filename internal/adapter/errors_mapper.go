package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/go-resty/resty/v2"
)

// restError is the error envelope returned by the backend REST services:
//
//	{"error": {"code": 400, "message": "EMAIL_EXISTS", "status": "INVALID_ARGUMENT"}}
type restError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func decodeRESTError(resp *resty.Response) restError {
	var e restError
	_ = json.Unmarshal(resp.Body(), &e)
	if e.Error.Code == 0 {
		e.Error.Code = resp.StatusCode()
	}
	if e.Error.Message == "" {
		e.Error.Message = strings.TrimSpace(string(resp.Body()))
	}
	if e.Error.Message == "" {
		e.Error.Message = http.StatusText(resp.StatusCode())
	}
	return e
}

func isSuccess(resp *resty.Response) bool {
	return resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
}

// mapIdentityError maps identity REST errors. The identity API reports the
// reason as an upper-case code in the message, optionally followed by
// " : <details>".
func mapIdentityError(resp *resty.Response) error {
	if isSuccess(resp) {
		return nil
	}

	e := decodeRESTError(resp)
	message := e.Error.Message
	code, _, _ := strings.Cut(message, " : ")

	switch {
	case code == "EMAIL_EXISTS":
		return fmt.Errorf("%w: %s", backend.ErrEmailAlreadyInUse, message)
	case code == "EMAIL_NOT_FOUND", code == "INVALID_PASSWORD", code == "INVALID_LOGIN_CREDENTIALS", code == "USER_DISABLED":
		return fmt.Errorf("%w: %s", backend.ErrInvalidCredentials, message)
	case code == "WEAK_PASSWORD":
		return fmt.Errorf("%w: %s", backend.ErrWeakPassword, message)
	case code == "INVALID_EMAIL", code == "MISSING_EMAIL":
		return fmt.Errorf("%w: %s", backend.ErrInvalidEmail, message)
	case code == "INVALID_ID_TOKEN", code == "TOKEN_EXPIRED", code == "USER_NOT_FOUND", code == "CREDENTIAL_TOO_OLD_LOGIN_AGAIN":
		return fmt.Errorf("%w: %s", backend.ErrInvalidIDToken, message)
	case strings.HasPrefix(message, "API key not valid"), code == "CONFIGURATION_NOT_FOUND", code == "PROJECT_NOT_FOUND":
		return fmt.Errorf("%w: %s", backend.ErrConfiguration, message)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, e.Error.Code, message)
	}
}

// mapDocumentError maps document database REST errors by their canonical
// status.
func mapDocumentError(resp *resty.Response) error {
	if isSuccess(resp) {
		return nil
	}

	e := decodeRESTError(resp)
	message := e.Error.Message

	switch e.Error.Status {
	case "NOT_FOUND":
		return fmt.Errorf("%w: %s", backend.ErrDocumentNotFound, message)
	case "PERMISSION_DENIED", "UNAUTHENTICATED":
		return fmt.Errorf("%w: %s", backend.ErrPermissionDenied, message)
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION":
		if strings.HasPrefix(message, "API key not valid") {
			return fmt.Errorf("%w: %s", backend.ErrConfiguration, message)
		}
		return fmt.Errorf("%w: %s", backend.ErrInvalidQuery, message)
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", backend.ErrDocumentNotFound, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", backend.ErrPermissionDenied, message)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, resp.StatusCode(), message)
	}
}
