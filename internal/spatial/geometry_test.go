package spatial

import (
	"math"
	"testing"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

func square(lat, lng, side float64) []domain.LatLng {
	return []domain.LatLng{
		{Lat: lat, Lng: lng},
		{Lat: lat, Lng: lng + side},
		{Lat: lat + side, Lng: lng + side},
		{Lat: lat + side, Lng: lng},
	}
}

func TestPointInPolygon(t *testing.T) {
	quad := []domain.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 12},
		{Lat: 10, Lng: -2},
	}

	t.Run("point clearly inside", func(t *testing.T) {
		if !PointInPolygon(domain.LatLng{Lat: 5, Lng: 5}, quad) {
			t.Error("Expected point inside quadrilateral")
		}
	})

	t.Run("point clearly outside", func(t *testing.T) {
		if PointInPolygon(domain.LatLng{Lat: 15, Lng: 5}, quad) {
			t.Error("Expected point outside quadrilateral")
		}
		if PointInPolygon(domain.LatLng{Lat: 5, Lng: 20}, quad) {
			t.Error("Expected point outside quadrilateral")
		}
	})

	t.Run("degenerate polygon", func(t *testing.T) {
		line := []domain.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}
		if PointInPolygon(domain.LatLng{Lat: 0.5, Lng: 0.5}, line) {
			t.Error("Expected false for fewer than 3 vertices")
		}
	})
}

func TestCentroid(t *testing.T) {
	c := Centroid(square(10, 20, 2))
	if c.Lat != 11 || c.Lng != 21 {
		t.Errorf("Expected centroid (11, 21), got (%v, %v)", c.Lat, c.Lng)
	}

	empty := Centroid(nil)
	if empty.Lat != 0 || empty.Lng != 0 {
		t.Errorf("Expected zero centroid for no points, got %+v", empty)
	}
}

func TestPolygonAreaKm2(t *testing.T) {
	t.Run("unit degree square at equator", func(t *testing.T) {
		area := PolygonAreaKm2(square(0, 0, 1))
		if area <= 10000 || area >= 15000 {
			t.Errorf("Expected area in (10000, 15000) km², got %v", area)
		}
	})

	t.Run("unit degree square at 60N is smaller", func(t *testing.T) {
		equator := PolygonAreaKm2(square(0, 0, 1))
		north := PolygonAreaKm2(square(60, 0, 1))
		if north <= 0 {
			t.Errorf("Expected positive area at 60N, got %v", north)
		}
		if north >= equator {
			t.Errorf("Expected area at 60N (%v) smaller than at equator (%v)", north, equator)
		}
	})

	t.Run("small neighborhood square", func(t *testing.T) {
		area := PolygonAreaKm2(square(0, 0, 0.005))
		if area < 0.2 || area > 0.4 {
			t.Errorf("Expected area in [0.2, 0.4] km², got %v", area)
		}
	})

	t.Run("orientation independent", func(t *testing.T) {
		cw := square(0, 0, 1)
		ccw := []domain.LatLng{cw[3], cw[2], cw[1], cw[0]}
		if a, b := PolygonAreaKm2(cw), PolygonAreaKm2(ccw); a != b {
			t.Errorf("Expected same area regardless of winding, got %v and %v", a, b)
		}
	})

	t.Run("fewer than 3 points", func(t *testing.T) {
		if a := PolygonAreaKm2(square(0, 0, 1)[:2]); a != 0 {
			t.Errorf("Expected 0 for 2 points, got %v", a)
		}
	})
}

func TestDistanceKm(t *testing.T) {
	// Paris to London is roughly 344 km.
	paris := domain.LatLng{Lat: 48.8566, Lng: 2.3522}
	london := domain.LatLng{Lat: 51.5074, Lng: -0.1278}

	d := DistanceKm(paris, london)
	if math.Abs(d-344) > 10 {
		t.Errorf("Expected ~344 km, got %v", d)
	}

	if z := DistanceKm(paris, paris); z != 0 {
		t.Errorf("Expected 0 distance to self, got %v", z)
	}
}
