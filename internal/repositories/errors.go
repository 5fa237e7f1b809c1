package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Callers match
// them with errors.Is.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a version-checked write matched no
	// row, meaning a concurrent writer got there first.
	ErrVersionConflict = errors.New("version conflict")
)
