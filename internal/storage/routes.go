// ABOUTME: Route CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for routes.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JWicher/wayzza/internal/models"
)

// CreateRoute stores a new route and returns it with the assigned id.
func (d *DB) CreateRoute(name string) (*models.Route, error) {
	if !models.ValidRouteName(name) {
		return nil, ErrEmptyName
	}
	name = strings.TrimSpace(name)

	now := time.Now().UTC()
	result, err := d.db.Exec(
		"INSERT INTO routes (name, created_at) VALUES (?, ?)",
		name, now.Format(time.RFC3339),
	)
	if err != nil {
		if mapped := mapConstraintErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("create route: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	return &models.Route{ID: id, Name: name, CreatedAt: now}, nil
}

// GetRoute retrieves a route by id.
func (d *DB) GetRoute(id int64) (*models.Route, error) {
	row := d.db.QueryRow(
		"SELECT id, name, created_at FROM routes WHERE id = ?", id,
	)
	return scanRoute(row)
}

// ListRoutes retrieves all routes, most recently created first.
func (d *DB) ListRoutes() ([]*models.Route, error) {
	rows, err := d.db.Query(
		"SELECT id, name, created_at FROM routes ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var routes []*models.Route
	for rows.Next() {
		r, err := scanRouteRow(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// RenameRoute changes a route's name. The new name must be non-empty
// and unique across all routes.
func (d *DB) RenameRoute(id int64, name string) (*models.Route, error) {
	if !models.ValidRouteName(name) {
		return nil, ErrEmptyName
	}
	name = strings.TrimSpace(name)

	result, err := d.db.Exec("UPDATE routes SET name = ? WHERE id = ?", name, id)
	if err != nil {
		if mapped := mapConstraintErr(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("rename route: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rename route: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return d.GetRoute(id)
}

// DeleteRoute removes a route and, via the schema's cascade, all of
// its samples. Returns the number of routes deleted (0 or 1).
func (d *DB) DeleteRoute(id int64) (int64, error) {
	result, err := d.db.Exec("DELETE FROM routes WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete route: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete route: %w", err)
	}
	return affected, nil
}

// ClearAll wipes every route, sample, and setting.
func (d *DB) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM samples",
		"DELETE FROM routes",
		"DELETE FROM settings",
	} {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("clear all data: %w", err)
		}
	}
	return nil
}

func scanRoute(row *sql.Row) (*models.Route, error) {
	var r models.Route
	var createdAt string
	err := row.Scan(&r.ID, &r.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan route: %w", err)
	}
	r.CreatedAt = parseStoredTime(createdAt)
	return &r, nil
}

func scanRouteRow(rows *sql.Rows) (*models.Route, error) {
	var r models.Route
	var createdAt string
	if err := rows.Scan(&r.ID, &r.Name, &createdAt); err != nil {
		return nil, fmt.Errorf("scan route: %w", err)
	}
	r.CreatedAt = parseStoredTime(createdAt)
	return &r, nil
}

// parseStoredTime handles both RFC3339 (written by this code) and
// SQLite's CURRENT_TIMESTAMP format (written by column defaults).
func parseStoredTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
