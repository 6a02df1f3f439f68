// ABOUTME: Tracking settings model with interval configuration.
// ABOUTME: Provides defaults and validation for sampling intervals.
package models

import (
	"fmt"
	"time"
)

const (
	// DefaultTimeIntervalSeconds is the minimum time between samples
	// until the user overrides it.
	DefaultTimeIntervalSeconds = 5

	// DefaultDistanceIntervalMeters is the minimum distance between
	// samples until the user overrides it.
	DefaultDistanceIntervalMeters = 10
)

// Settings holds the process-wide tracking configuration. Both values
// must be at least 1.
type Settings struct {
	MinTimeIntervalSeconds    int
	MinDistanceIntervalMeters int
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() *Settings {
	return &Settings{
		MinTimeIntervalSeconds:    DefaultTimeIntervalSeconds,
		MinDistanceIntervalMeters: DefaultDistanceIntervalMeters,
	}
}

// Validate checks both intervals are positive.
func (s *Settings) Validate() error {
	if s.MinTimeIntervalSeconds < 1 {
		return fmt.Errorf("time interval must be at least 1 second, got %d", s.MinTimeIntervalSeconds)
	}
	if s.MinDistanceIntervalMeters < 1 {
		return fmt.Errorf("distance interval must be at least 1 meter, got %d", s.MinDistanceIntervalMeters)
	}
	return nil
}

// MinInterval returns the time interval as a duration.
func (s *Settings) MinInterval() time.Duration {
	return time.Duration(s.MinTimeIntervalSeconds) * time.Second
}
