package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// DistanceKm calculates the great-circle distance between two points in
// kilometers.
func DistanceKm(a, b domain.LatLng) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceMeters calculates the great-circle distance between two points in
// meters.
func DistanceMeters(a, b domain.LatLng) float64 {
	return DistanceKm(a, b) * 1000
}
