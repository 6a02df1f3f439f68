// ABOUTME: Tests for coordinate validation and sample timestamps.
// ABOUTME: Covers latitude/longitude boundaries.
package models

import (
	"testing"
	"time"
)

func TestValidCoordinate(t *testing.T) {
	valid := [][2]float64{
		{0, 0},
		{52.5200, 13.4050},
		{-90, -180},
		{90, 180},
	}
	for _, c := range valid {
		if !ValidCoordinate(c[0], c[1]) {
			t.Errorf("ValidCoordinate(%v, %v) = false, want true", c[0], c[1])
		}
	}

	invalid := [][2]float64{
		{90.1, 0},
		{-91, 0},
		{0, 180.5},
		{0, -181},
	}
	for _, c := range invalid {
		if ValidCoordinate(c[0], c[1]) {
			t.Errorf("ValidCoordinate(%v, %v) = true, want false", c[0], c[1])
		}
	}
}

func TestSampleTime(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	s := &Sample{Timestamp: ts.UnixMilli()}
	if !s.Time().Equal(ts) {
		t.Errorf("Time() = %v, want %v", s.Time(), ts)
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
	if s.MinTimeIntervalSeconds != 5 || s.MinDistanceIntervalMeters != 10 {
		t.Errorf("unexpected defaults: %+v", s)
	}

	bad := &Settings{MinTimeIntervalSeconds: 0, MinDistanceIntervalMeters: 10}
	if err := bad.Validate(); err == nil {
		t.Error("zero time interval should fail validation")
	}
	bad = &Settings{MinTimeIntervalSeconds: 5, MinDistanceIntervalMeters: 0}
	if err := bad.Validate(); err == nil {
		t.Error("zero distance interval should fail validation")
	}
}
