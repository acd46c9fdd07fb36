package models

import "errors"

// Error constants for directory operations
var (
	ErrStoreUnavailable = errors.New("directory store unavailable")
	ErrStoreRateLimited = errors.New("directory store rate limit exceeded")
	ErrInvalidRow       = errors.New("invalid directory row")
	ErrMissingConfig    = errors.New("missing configuration")
)
