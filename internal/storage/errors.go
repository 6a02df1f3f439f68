// ABOUTME: Sentinel errors for the route store.
// ABOUTME: Maps SQLite constraint violations to the store's error taxonomy.
package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a route or sample does not exist,
	// including appends against a just-deleted route.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a create or rename collides
	// with an existing route name.
	ErrDuplicateName = errors.New("route name already exists")

	// ErrEmptyName is returned for empty or whitespace-only names,
	// rejected before any SQL runs.
	ErrEmptyName = errors.New("route name must not be empty")
)

// mapConstraintErr translates modernc sqlite constraint errors into
// sentinel errors. The driver exposes the SQLite result code in the
// error text, so matching on it is the practical option.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateName
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrNotFound
	}
	return err
}
