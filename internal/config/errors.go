package config

import "errors"

// Configuration validation errors.
//
// Design decision: Package-level sentinel errors rather than error
// values created inside Validate(), so callers can use errors.Is()
// while the messages stay human-readable.
var (
	// ErrInvalidPort is returned when the listen port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrNoModels is returned when the insight model chain is empty.
	// An empty chain would silently disable insights even with a
	// credential configured, which is almost certainly a mistake.
	ErrNoModels = errors.New("no insight models configured: the fallback chain must contain at least one model")

	// ErrInvalidConcurrency is returned when the batch concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingFormats is returned when both --json and
	// --markdown are requested. Only one output format at a time.
	ErrConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
