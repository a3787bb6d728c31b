package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBackendConfigs indicates an incomplete backend configuration
	// record (one of the identity fields is empty).
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, a base url that is not an absolute path).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, the sql driver without a DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, the sql driver without a token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
