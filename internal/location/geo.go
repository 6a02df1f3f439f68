// ABOUTME: Geodesic helpers for the simulated provider.
// ABOUTME: Haversine distance and linear waypoint interpolation.
package location

import "math"

const earthRadiusM = 6371000

// HaversineM returns the great-circle distance in meters between two
// coordinates given in decimal degrees.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusM * c
}

// Waypoint is one anchor of a simulated path.
type Waypoint struct {
	Latitude  float64
	Longitude float64
}

// interpolatePath expands waypoints into a dense path with roughly
// spacingM meters between consecutive points.
func interpolatePath(waypoints []Waypoint, spacingM float64) []Waypoint {
	if len(waypoints) < 2 || spacingM <= 0 {
		return waypoints
	}

	var path []Waypoint
	for i := 0; i < len(waypoints)-1; i++ {
		start, end := waypoints[i], waypoints[i+1]
		dist := HaversineM(start.Latitude, start.Longitude, end.Latitude, end.Longitude)

		steps := int(dist / spacingM)
		if steps < 1 {
			steps = 1
		}
		for j := 0; j < steps; j++ {
			ratio := float64(j) / float64(steps)
			path = append(path, Waypoint{
				Latitude:  start.Latitude + (end.Latitude-start.Latitude)*ratio,
				Longitude: start.Longitude + (end.Longitude-start.Longitude)*ratio,
			})
		}
	}
	path = append(path, waypoints[len(waypoints)-1])
	return path
}
