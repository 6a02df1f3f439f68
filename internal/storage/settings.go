// ABOUTME: Tracking settings persistence in the settings key/value table.
// ABOUTME: Falls back to defaults for keys that were never written.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/JWicher/wayzza/internal/models"
)

const (
	settingTimeInterval     = "min_time_interval_seconds"
	settingDistanceInterval = "min_distance_interval_meters"
)

// GetSettings reads the tracking settings, using defaults for any
// value the user never overrode.
func (d *DB) GetSettings() (*models.Settings, error) {
	s := models.DefaultSettings()

	if v, ok, err := d.getSetting(settingTimeInterval); err != nil {
		return nil, err
	} else if ok {
		s.MinTimeIntervalSeconds = v
	}

	if v, ok, err := d.getSetting(settingDistanceInterval); err != nil {
		return nil, err
	} else if ok {
		s.MinDistanceIntervalMeters = v
	}

	return s, nil
}

// SetSettings validates and persists the tracking settings.
func (d *DB) SetSettings(s *models.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("set settings: %w", err)
	}

	if err := d.putSetting(settingTimeInterval, s.MinTimeIntervalSeconds); err != nil {
		return err
	}
	return d.putSetting(settingDistanceInterval, s.MinDistanceIntervalMeters)
}

func (d *DB) getSetting(key string) (int, bool, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get setting %s: %w", key, err)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("get setting %s: invalid value %q: %w", key, value, err)
	}
	return n, true, nil
}

func (d *DB) putSetting(key string, value int) error {
	_, err := d.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, strconv.Itoa(value),
	)
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}
