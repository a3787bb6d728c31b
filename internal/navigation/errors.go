package navigation

import "errors"

// Route table validation errors.
var (
	ErrInvalidPath        = errors.New("route path must be non-empty and start with '/'")
	ErrRouteNameMissing   = errors.New("route name is missing")
	ErrDuplicateRouteName = errors.New("duplicate route name")
	ErrDuplicatePath      = errors.New("duplicate route path")
	ErrViewMissing        = errors.New("route view is missing")
	ErrInvalidParam       = errors.New("invalid route parameter segment")
)

// Navigation errors.
var (
	ErrUnknownRoute = errors.New("unknown route name")
	ErrMissingParam = errors.New("missing route parameter")
	ErrNoHistory    = errors.New("no history entry in that direction")
)
