// ABOUTME: Coordinate sample model, one GPS fix tagged with a route.
// ABOUTME: Validates latitude/longitude ranges before persistence.
package models

import "time"

// Sample is a single GPS fix belonging to exactly one route.
// Timestamp is milliseconds since the Unix epoch; append order is
// expected to be non-decreasing per channel but the store does not
// enforce it, so consumers sort by Timestamp.
type Sample struct {
	ID        int64
	RouteID   int64
	Latitude  float64
	Longitude float64
	Timestamp int64
	CreatedAt time.Time
}

// Time returns the sample timestamp as a time.Time.
func (s *Sample) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// ValidLatitude reports whether lat is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is within [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// ValidCoordinate reports whether the pair is a plausible GPS fix.
func ValidCoordinate(lat, lon float64) bool {
	return ValidLatitude(lat) && ValidLongitude(lon)
}
