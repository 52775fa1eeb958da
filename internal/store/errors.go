package store

import "errors"

// Sentinel errors.
var (
	// ErrNotFound is returned by low-level reads when a key is absent.
	ErrNotFound = errors.New("store: key not found")

	// ErrClosed is returned when the database has already been closed.
	ErrClosed = errors.New("store: database closed")
)
