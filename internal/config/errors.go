package config

import "errors"

// Configuration and input validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each call site. This allows callers to
// use errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidListenAddr is returned when the HTTP listen address is empty.
	ErrInvalidListenAddr = errors.New("invalid listen address: must not be empty")

	// ErrInvalidTimeout is returned when a detector timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid detector timeout: must be positive")

	// ErrInvalidTextLimit is returned when a text length limit is not positive.
	ErrInvalidTextLimit = errors.New("invalid text limit: must be positive")

	// ErrEmptyText is returned when input text is empty. Empty input is
	// rejected at the boundary; the core never sees it.
	ErrEmptyText = errors.New("text must not be empty")

	// ErrTextTooLong is returned when input text exceeds the configured
	// length limit in code points.
	ErrTextTooLong = errors.New("text exceeds the maximum allowed length")
)
