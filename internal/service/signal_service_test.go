package service

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

type signalFixture struct {
	svc           *SignalService
	signals       *fakeSignals
	geofences     *fakeGeofences
	users         *fakeUsers
	subscriptions *fakeSubscriptions
	interactions  *fakeInteractions
	snapshots     *fakeSnapshots
}

func newSignalFixture() *signalFixture {
	f := &signalFixture{
		signals:       &fakeSignals{},
		geofences:     &fakeGeofences{items: make(map[domain.GeofenceID]*domain.Geofence)},
		users:         &fakeUsers{items: make(map[domain.UserID]*domain.User)},
		subscriptions: newFakeSubscriptions(),
		interactions:  &fakeInteractions{},
		snapshots:     &fakeSnapshots{items: make(map[domain.SignalID][]domain.ActivitySnapshot)},
	}
	f.users.items["free-user"] = &domain.User{ID: "free-user", Tier: domain.TierFree}
	f.users.items["paid-user"] = &domain.User{ID: "paid-user", Tier: domain.TierPaid}
	f.users.items["admin-user"] = &domain.User{ID: "admin-user", Tier: domain.TierAdmin}
	f.svc = NewSignalService(
		f.signals, f.geofences, f.users, f.subscriptions,
		f.interactions, f.snapshots, zerolog.Nop(),
	)
	return f
}

func validInput() SignalInput {
	return SignalInput{
		Name:     "bears downtown",
		Target:   domain.Target{Kind: domain.TargetPolygon, Polygon: polygonAround(45, -122, 0.01)},
		Triggers: []domain.TriggerKind{domain.TriggerNewSighting},
	}
}

func TestCreateSignalValidation(t *testing.T) {
	f := newSignalFixture()

	t.Run("valid input succeeds", func(t *testing.T) {
		sig, err := f.svc.Create("free-user", validInput())
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if sig.ID == "" || !sig.IsActive || sig.OwnerID != "free-user" {
			t.Errorf("Unexpected created signal: %+v", sig)
		}
		if sig.Classification != domain.ClassPersonal {
			t.Errorf("Expected default personal classification, got %s", sig.Classification)
		}
	})

	t.Run("name required", func(t *testing.T) {
		in := validInput()
		in.Name = ""
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrNameRequired) {
			t.Errorf("Expected %s, got %v", domain.ErrNameRequired, err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		in := validInput()
		in.Name = strings.Repeat("x", 101)
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrNameTooLong) {
			t.Errorf("Expected %s, got %v", domain.ErrNameTooLong, err)
		}
	})

	t.Run("description too long", func(t *testing.T) {
		in := validInput()
		in.Description = strings.Repeat("x", 501)
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrDescriptionTooLong) {
			t.Errorf("Expected %s, got %v", domain.ErrDescriptionTooLong, err)
		}
	})

	t.Run("owner required", func(t *testing.T) {
		_, err := f.svc.Create("", validInput())
		if !domain.IsCode(err, domain.ErrOwnerRequired) {
			t.Errorf("Expected %s, got %v", domain.ErrOwnerRequired, err)
		}
	})

	t.Run("triggers required", func(t *testing.T) {
		in := validInput()
		in.Triggers = nil
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrTriggersRequired) {
			t.Errorf("Expected %s, got %v", domain.ErrTriggersRequired, err)
		}
	})

	t.Run("duplicate triggers", func(t *testing.T) {
		in := validInput()
		in.Triggers = []domain.TriggerKind{domain.TriggerNewSighting, domain.TriggerNewSighting}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrDuplicateTriggers) {
			t.Errorf("Expected %s, got %v", domain.ErrDuplicateTriggers, err)
		}
	})

	t.Run("invalid score range", func(t *testing.T) {
		in := validInput()
		in.Conditions = &domain.SignalConditions{MinScore: intPtr(10), MaxScore: intPtr(5)}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrInvalidScoreRange) {
			t.Errorf("Expected %s, got %v", domain.ErrInvalidScoreRange, err)
		}
	})

	t.Run("polygon needs 3 points", func(t *testing.T) {
		in := validInput()
		in.Target = domain.Target{
			Kind:    domain.TargetPolygon,
			Polygon: &domain.Polygon{Points: []domain.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}},
		}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrInvalidPolygon) {
			t.Errorf("Expected %s, got %v", domain.ErrInvalidPolygon, err)
		}
	})

	t.Run("geofence target needs id", func(t *testing.T) {
		in := validInput()
		in.Target = domain.Target{Kind: domain.TargetGeofence}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrGeofenceRequired) {
			t.Errorf("Expected %s, got %v", domain.ErrGeofenceRequired, err)
		}
	})
}

func intPtr(v int) *int { return &v }

func TestCreateSignalQuota(t *testing.T) {
	f := newSignalFixture()

	t.Run("free tier area limit", func(t *testing.T) {
		in := validInput()
		// Roughly 0.1 degree square near the equator, ~123 km².
		in.Target = domain.Target{Kind: domain.TargetPolygon, Polygon: polygonAround(0, 0, 0.05)}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrGeofenceAreaExceeded) {
			t.Errorf("Expected %s, got %v", domain.ErrGeofenceAreaExceeded, err)
		}
		if _, pErr := f.svc.Create("paid-user", in); pErr != nil {
			t.Errorf("Expected paid tier to allow the same area, got %v", pErr)
		}
	})

	t.Run("global signals are admin only", func(t *testing.T) {
		in := validInput()
		in.Target = domain.Target{Kind: domain.TargetGlobal}
		_, err := f.svc.Create("paid-user", in)
		if !domain.IsCode(err, domain.ErrGlobalNotAllowed) {
			t.Errorf("Expected %s, got %v", domain.ErrGlobalNotAllowed, err)
		}
		if _, aErr := f.svc.Create("admin-user", in); aErr != nil {
			t.Errorf("Expected admin to create global signals, got %v", aErr)
		}
	})

	t.Run("independent quota checks all reported", func(t *testing.T) {
		in := validInput()
		// 25 vertices spanning far more than 25 km²: both the point and
		// area limits fail for free.
		points := make([]domain.LatLng, 25)
		for i := range points {
			points[i] = domain.LatLng{Lat: float64(i) * 0.01, Lng: float64(i%5) * 0.2}
		}
		in.Target = domain.Target{Kind: domain.TargetPolygon, Polygon: &domain.Polygon{Points: points}}

		_, err := f.svc.Create("free-user", in)
		if err == nil {
			t.Fatal("Expected quota failure")
		}
		if !domain.IsCode(err, domain.ErrGeofenceAreaExceeded) && !domain.IsCode(err, domain.ErrPolygonPointsExceeded) {
			t.Errorf("Expected a joined quota error, got %v", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, domain.ErrPolygonPointsExceeded) {
			t.Errorf("Expected point-count failure to be reported too, got %q", msg)
		}
	})

	t.Run("geofence target checks referenced area", func(t *testing.T) {
		f.geofences.items["gf-big"] = &domain.Geofence{
			ID:      "gf-big",
			Polygon: *polygonAround(0, 0, 0.5), // ~12000 km²
		}
		in := validInput()
		in.Target = domain.Target{Kind: domain.TargetGeofence, GeofenceID: "gf-big"}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrGeofenceAreaExceeded) {
			t.Errorf("Expected %s, got %v", domain.ErrGeofenceAreaExceeded, err)
		}
	})

	t.Run("unresolvable geofence", func(t *testing.T) {
		in := validInput()
		in.Target = domain.Target{Kind: domain.TargetGeofence, GeofenceID: "gf-missing"}
		_, err := f.svc.Create("free-user", in)
		if !domain.IsCode(err, domain.ErrGeofenceRequired) {
			t.Errorf("Expected %s, got %v", domain.ErrGeofenceRequired, err)
		}
	})
}

func TestUpdateSignalOwnership(t *testing.T) {
	f := newSignalFixture()
	sig, err := f.svc.Create("free-user", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	in := validInput()
	in.Name = "renamed"

	if _, err := f.svc.Update("paid-user", sig.ID, in); !domain.IsCode(err, domain.ErrSignalUnauthorized) {
		t.Errorf("Expected %s for non-owner, got %v", domain.ErrSignalUnauthorized, err)
	}

	updated, err := f.svc.Update("free-user", sig.ID, in)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("Expected updated name, got %q", updated.Name)
	}
	if updated.OwnerID != "free-user" {
		t.Errorf("Expected ownership unchanged, got %s", updated.OwnerID)
	}

	if _, err := f.svc.Update("free-user", "missing", in); !domain.IsCode(err, domain.ErrSignalNotFound) {
		t.Errorf("Expected %s, got %v", domain.ErrSignalNotFound, err)
	}
}

func TestSubscribeLifecycle(t *testing.T) {
	f := newSignalFixture()
	in := validInput()
	in.Conditions = &domain.SignalConditions{CategoryIDs: []domain.CategoryID{"cat-wildlife"}}
	sig, err := f.svc.Create("free-user", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	t.Run("subscribe", func(t *testing.T) {
		if err := f.svc.Subscribe("paid-user", sig.ID); err != nil {
			t.Fatalf("Subscribe returned error: %v", err)
		}
		stored, _ := f.signals.GetByID(sig.ID)
		if stored.Analytics.SubscriberCount != 1 {
			t.Errorf("Expected subscriber count 1, got %d", stored.Analytics.SubscriberCount)
		}
		if len(f.interactions.subscriptions) != 1 || f.interactions.subscriptions[0] != "cat-wildlife" {
			t.Errorf("Expected category subscription interaction, got %v", f.interactions.subscriptions)
		}
		if len(f.snapshots.items[sig.ID]) == 0 {
			t.Error("Expected an activity snapshot row for the subscription")
		}
	})

	t.Run("double subscribe", func(t *testing.T) {
		err := f.svc.Subscribe("paid-user", sig.ID)
		if !domain.IsCode(err, domain.ErrAlreadySubscribed) {
			t.Errorf("Expected %s, got %v", domain.ErrAlreadySubscribed, err)
		}
	})

	t.Run("unsubscribe", func(t *testing.T) {
		if err := f.svc.Unsubscribe("paid-user", sig.ID); err != nil {
			t.Fatalf("Unsubscribe returned error: %v", err)
		}
		err := f.svc.Unsubscribe("paid-user", sig.ID)
		if !domain.IsCode(err, domain.ErrNotSubscribed) {
			t.Errorf("Expected %s, got %v", domain.ErrNotSubscribed, err)
		}
	})

	t.Run("inactive signal rejects subscribers", func(t *testing.T) {
		if _, err := f.svc.SetActive("free-user", sig.ID, false); err != nil {
			t.Fatalf("SetActive returned error: %v", err)
		}
		err := f.svc.Subscribe("admin-user", sig.ID)
		if !domain.IsCode(err, domain.ErrSignalNotActive) {
			t.Errorf("Expected %s, got %v", domain.ErrSignalNotActive, err)
		}
	})
}

func TestDeleteSignal(t *testing.T) {
	f := newSignalFixture()
	sig, err := f.svc.Create("free-user", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := f.svc.Delete("paid-user", sig.ID); !domain.IsCode(err, domain.ErrSignalUnauthorized) {
		t.Errorf("Expected %s for non-owner, got %v", domain.ErrSignalUnauthorized, err)
	}
	if err := f.svc.Delete("free-user", sig.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got, _ := f.signals.GetByID(sig.ID); got != nil {
		t.Error("Expected signal to be removed")
	}
}
