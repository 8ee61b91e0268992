package spatial

import (
	"math"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

const metersPerDegreeLat = 111320.0

// PointInPolygon checks if a point is inside a polygon using ray casting
// (even-odd rule): count crossings of a horizontal ray from the point and
// return true iff the count is odd. Points exactly on an edge follow the
// algorithm's natural half-open behavior and are not specially handled.
func PointInPolygon(point domain.LatLng, polygon []domain.LatLng) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lng < (polygon[j].Lng-polygon[i].Lng)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lng) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Centroid calculates the arithmetic centroid (mean lat, mean lng) of a set
// of points.
func Centroid(points []domain.LatLng) domain.LatLng {
	if len(points) == 0 {
		return domain.LatLng{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return domain.LatLng{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// PolygonAreaKm2 calculates the area of a polygon in square kilometers.
// Vertices are projected onto a local tangent plane (longitude distances
// scaled by cos(latitude) to correct for meridian convergence), then the
// planar shoelace formula is applied. Orientation-independent; returns 0
// for fewer than 3 points.
func PolygonAreaKm2(points []domain.LatLng) float64 {
	if len(points) < 3 {
		return 0
	}

	latRad := points[0].Lat * math.Pi / 180
	metersPerDegreeLng := metersPerDegreeLat * math.Cos(latRad)

	var sum float64
	for i := 0; i < len(points); i++ {
		j := (i + 1) % len(points)
		sum += (points[j].Lng - points[i].Lng) * (points[j].Lat + points[i].Lat)
	}

	areaM2 := math.Abs(sum) * metersPerDegreeLat * metersPerDegreeLng / 2.0
	return areaM2 / 1e6
}
