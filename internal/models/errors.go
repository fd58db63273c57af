package models

import "errors"

// Sentinel errors shared across repositories and services. Handlers map
// these onto HTTP status codes with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInsufficientFunds   = errors.New("insufficient wallet balance")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	ErrUnauthenticated     = errors.New("authentication required")
)
