// ABOUTME: Sentinel errors for the tracking session controller.
// ABOUTME: Start-command failures surface these to the user with retry.
package tracking

import "errors"

var (
	// ErrPermissionDenied means foreground location permission was
	// not granted; the session cannot start without it.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrRouteUnavailable means auto-route creation failed twice and
	// there is no target route to record against.
	ErrRouteUnavailable = errors.New("no route available for tracking")

	// ErrNotPrepared means Start was called before Prepare.
	ErrNotPrepared = errors.New("session not prepared")

	// ErrAlreadyTracking means Start was called while a session is
	// already recording.
	ErrAlreadyTracking = errors.New("session already tracking")
)
