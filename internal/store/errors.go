package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested document was not found.
	ErrNotFound = errors.New("document not found")

	// ErrConflict indicates a uniqueness conflict on insert.
	ErrConflict = errors.New("conflict")
)
