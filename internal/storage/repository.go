// ABOUTME: Repository interface for route and sample storage.
// ABOUTME: Defines the store contract the tracking controller depends on.
package storage

import (
	"github.com/JWicher/wayzza/internal/models"
)

// Repository defines the storage interface for route data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Route operations
	CreateRoute(name string) (*models.Route, error)
	GetRoute(id int64) (*models.Route, error)
	ListRoutes() ([]*models.Route, error)
	RenameRoute(id int64, name string) (*models.Route, error)
	DeleteRoute(id int64) (int64, error)

	// Sample operations
	AppendSample(routeID int64, lat, lon float64, timestamp int64) (int64, error)
	ListSamples(routeID int64) ([]*models.Sample, error)
	CountSamples(routeID int64) (int, error)

	// Settings
	GetSettings() (*models.Settings, error)
	SetSettings(s *models.Settings) error

	// Bulk wipe
	ClearAll() error

	// Lifecycle
	Close() error
}
