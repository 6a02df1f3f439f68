// ABOUTME: Coordinate sample persistence for SQLite storage.
// ABOUTME: Append-only writes plus timestamp-ordered reads and counts.
package storage

import (
	"fmt"
	"time"

	"github.com/JWicher/wayzza/internal/models"
)

// AppendSample persists one GPS fix against a route. Returns
// ErrNotFound when the route no longer exists (foreign key) and
// rejects out-of-range coordinates before touching the database.
func (d *DB) AppendSample(routeID int64, lat, lon float64, timestamp int64) (int64, error) {
	if !models.ValidCoordinate(lat, lon) {
		return 0, fmt.Errorf("append sample: coordinate out of range (%v, %v)", lat, lon)
	}

	result, err := d.db.Exec(
		"INSERT INTO samples (route_id, latitude, longitude, timestamp, created_at) VALUES (?, ?, ?, ?, ?)",
		routeID, lat, lon, timestamp, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if mapped := mapConstraintErr(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("append sample: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append sample: %w", err)
	}
	return id, nil
}

// ListSamples retrieves all samples for a route ordered by timestamp
// ascending. Foreground and background channels interleave without
// ordering guarantees, so the sort happens here, not at append time.
func (d *DB) ListSamples(routeID int64) ([]*models.Sample, error) {
	rows, err := d.db.Query(
		`SELECT id, route_id, latitude, longitude, timestamp, created_at
		 FROM samples WHERE route_id = ?
		 ORDER BY timestamp ASC, id ASC`,
		routeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []*models.Sample
	for rows.Next() {
		var s models.Sample
		var createdAt string
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Latitude, &s.Longitude, &s.Timestamp, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.CreatedAt = parseStoredTime(createdAt)
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}

// CountSamples returns the number of samples persisted for a route.
// The auto-route cleanup recheck depends on this going to the store
// rather than any in-memory view.
func (d *DB) CountSamples(routeID int64) (int, error) {
	var count int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM samples WHERE route_id = ?", routeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return count, nil
}
