package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

func polygonAround(lat, lng, half float64) *domain.Polygon {
	return &domain.Polygon{Points: []domain.LatLng{
		{Lat: lat - half, Lng: lng - half},
		{Lat: lat - half, Lng: lng + half},
		{Lat: lat + half, Lng: lng + half},
		{Lat: lat + half, Lng: lng - half},
	}}
}

func activeSignal(id string, target domain.Target, conditions *domain.SignalConditions) domain.Signal {
	return domain.Signal{
		ID:             domain.SignalID(id),
		Name:           id,
		OwnerID:        "owner-1",
		Target:         target,
		Triggers:       []domain.TriggerKind{domain.TriggerNewSighting},
		Conditions:     conditions,
		Classification: domain.ClassPersonal,
		IsActive:       true,
	}
}

func newEvaluatorFixture() (*EvaluatorService, *fakeSignals, *fakeGeofences, *fakeSightings, *fakeReputations) {
	signals := &fakeSignals{}
	geofences := &fakeGeofences{items: make(map[domain.GeofenceID]*domain.Geofence)}
	sightings := &fakeSightings{items: make(map[domain.SightingID]*domain.Sighting)}
	reputations := &fakeReputations{items: make(map[domain.UserID]*domain.Reputation)}
	svc := NewEvaluatorService(signals, geofences, sightings, reputations, zerolog.Nop())
	return svc, signals, geofences, sightings, reputations
}

func TestEvaluate(t *testing.T) {
	svc, signals, geofences, sightings, reputations := newEvaluatorFixture()

	sightings.items["sight-1"] = &domain.Sighting{
		ID:         "sight-1",
		CategoryID: "cat-wildlife",
		TypeID:     "type-bear",
		Location:   domain.LatLng{Lat: 45.0, Lng: -122.0},
		Importance: domain.ImportanceHigh,
		ReporterID: "reporter-1",
		Score:      5,
	}
	reputations.items["reporter-1"] = &domain.Reputation{UserID: "reporter-1", Score: 60}

	geofences.items["gf-1"] = &domain.Geofence{
		ID:      "gf-1",
		Name:    "downtown",
		Polygon: *polygonAround(45.0, -122.0, 0.1),
	}

	signals.items = []domain.Signal{
		activeSignal("global", domain.Target{Kind: domain.TargetGlobal}, nil),
		activeSignal("polygon-hit", domain.Target{Kind: domain.TargetPolygon, Polygon: polygonAround(45.0, -122.0, 0.5)}, nil),
		activeSignal("polygon-miss", domain.Target{Kind: domain.TargetPolygon, Polygon: polygonAround(10.0, 10.0, 0.5)}, nil),
		activeSignal("geofence-hit", domain.Target{Kind: domain.TargetGeofence, GeofenceID: "gf-1"}, nil),
		activeSignal("geofence-dangling", domain.Target{Kind: domain.TargetGeofence, GeofenceID: "gf-missing"}, nil),
		activeSignal("condition-miss", domain.Target{Kind: domain.TargetGlobal},
			&domain.SignalConditions{CategoryIDs: []domain.CategoryID{"cat-weather"}}),
		activeSignal("condition-hit", domain.Target{Kind: domain.TargetGlobal},
			&domain.SignalConditions{
				CategoryIDs:   []domain.CategoryID{"cat-wildlife"},
				MinTrustLevel: domain.TrustTrusted,
			}),
	}

	matched, err := svc.Evaluate(context.Background(), "sight-1")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	got := make(map[domain.SignalID]bool)
	for _, m := range matched {
		got[m.ID] = true
	}

	for _, want := range []domain.SignalID{"global", "polygon-hit", "geofence-hit", "condition-hit"} {
		if !got[want] {
			t.Errorf("Expected signal %s to match", want)
		}
	}
	for _, not := range []domain.SignalID{"polygon-miss", "geofence-dangling", "condition-miss"} {
		if got[not] {
			t.Errorf("Expected signal %s not to match", not)
		}
	}
}

func TestEvaluateSightingNotFound(t *testing.T) {
	svc, _, _, _, _ := newEvaluatorFixture()

	_, err := svc.Evaluate(context.Background(), "missing")
	if !domain.IsCode(err, domain.ErrSightingNotFound) {
		t.Errorf("Expected %s, got %v", domain.ErrSightingNotFound, err)
	}
}

func TestEvaluateDefaultsToUnverifiedReporter(t *testing.T) {
	svc, signals, _, sightings, _ := newEvaluatorFixture()

	// No reputation record at all for the reporter.
	sightings.items["sight-1"] = &domain.Sighting{
		ID:         "sight-1",
		CategoryID: "cat-wildlife",
		Location:   domain.LatLng{Lat: 1, Lng: 1},
		ReporterID: "reporter-unknown",
	}

	signals.items = []domain.Signal{
		activeSignal("needs-trust", domain.Target{Kind: domain.TargetGlobal},
			&domain.SignalConditions{MinTrustLevel: domain.TrustNew}),
		activeSignal("no-trust-floor", domain.Target{Kind: domain.TargetGlobal}, nil),
	}

	matched, err := svc.Evaluate(context.Background(), "sight-1")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "no-trust-floor" {
		t.Errorf("Expected only the unrestricted signal to match, got %v", matched)
	}
}

func TestEvaluateSkipsInactiveSignals(t *testing.T) {
	svc, signals, _, sightings, _ := newEvaluatorFixture()

	sightings.items["sight-1"] = &domain.Sighting{
		ID: "sight-1", Location: domain.LatLng{Lat: 0, Lng: 0}, ReporterID: "r",
	}

	inactive := activeSignal("inactive", domain.Target{Kind: domain.TargetGlobal}, nil)
	inactive.IsActive = false
	signals.items = []domain.Signal{inactive}

	matched, err := svc.Evaluate(context.Background(), "sight-1")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("Expected inactive signals to be excluded, got %v", matched)
	}
}

func TestEvaluateHonorsCancellation(t *testing.T) {
	svc, signals, _, sightings, _ := newEvaluatorFixture()

	sightings.items["sight-1"] = &domain.Sighting{
		ID: "sight-1", Location: domain.LatLng{Lat: 0, Lng: 0}, ReporterID: "r",
	}
	signals.items = []domain.Signal{activeSignal("g", domain.Target{Kind: domain.TargetGlobal}, nil)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Evaluate(ctx, "sight-1"); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
