// ABOUTME: Route model for recorded GPS tracks.
// ABOUTME: Handles auto-route naming derived from the clock.
package models

import (
	"strings"
	"time"
)

// Route is the persisted identity of one recording session.
// The ID is assigned by the store and immutable afterwards.
type Route struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// AutoRouteName derives a route name from a timestamp, in the
// YYYY-MM-DD HH-MM-SS form. Colons and periods are normalized so the
// name stays usable as an export filename.
func AutoRouteName(t time.Time) string {
	name := t.Format("2006-01-02 15:04:05")
	name = strings.ReplaceAll(name, ":", "-")
	return strings.ReplaceAll(name, ".", "-")
}

// ValidRouteName reports whether a user-supplied name is acceptable
// before it is handed to the store. Uniqueness is the store's job.
func ValidRouteName(name string) bool {
	return strings.TrimSpace(name) != ""
}
