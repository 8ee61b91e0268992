package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

func newPreferenceFixture() (*PreferenceService, *fakeSignals, *fakePreferences, *fakeInteractions) {
	signals := &fakeSignals{}
	signals.items = append(signals.items, domain.Signal{
		ID:      "sig-1",
		Name:    "owls in the park",
		OwnerID: "owner",
		Target:  domain.Target{Kind: domain.TargetGlobal},
		Conditions: &domain.SignalConditions{
			CategoryIDs: []domain.CategoryID{"birds", "nocturnal"},
		},
		IsActive: true,
	})
	preferences := newFakePreferences()
	interactions := &fakeInteractions{}
	return NewPreferenceService(signals, preferences, interactions, zerolog.Nop()), signals, preferences, interactions
}

func TestPreferenceToggles(t *testing.T) {
	t.Run("hide then unhide round-trips", func(t *testing.T) {
		svc, _, preferences, _ := newPreferenceFixture()
		if err := svc.SetHidden("u1", "sig-1", true); err != nil {
			t.Fatalf("SetHidden returned error: %v", err)
		}
		hidden, _ := preferences.GetHiddenSignalIDs("u1")
		if !hidden["sig-1"] {
			t.Error("Signal was not hidden")
		}

		if err := svc.SetHidden("u1", "sig-1", false); err != nil {
			t.Fatalf("SetHidden returned error: %v", err)
		}
		hidden, _ = preferences.GetHiddenSignalIDs("u1")
		if hidden["sig-1"] {
			t.Error("Signal is still hidden after unhide")
		}
	})

	t.Run("pin and unimportant are independent flags", func(t *testing.T) {
		svc, _, preferences, _ := newPreferenceFixture()
		if err := svc.SetPinned("u1", "sig-1", true); err != nil {
			t.Fatalf("SetPinned returned error: %v", err)
		}
		if err := svc.SetUnimportant("u1", "sig-1", true); err != nil {
			t.Fatalf("SetUnimportant returned error: %v", err)
		}

		pinned, _ := preferences.GetPinnedSignalIDs("u1")
		unimportant, _ := preferences.GetUnimportantSignalIDs("u1")
		hidden, _ := preferences.GetHiddenSignalIDs("u1")
		if !pinned["sig-1"] || !unimportant["sig-1"] || hidden["sig-1"] {
			t.Errorf("Unexpected flags: pinned=%v unimportant=%v hidden=%v",
				pinned["sig-1"], unimportant["sig-1"], hidden["sig-1"])
		}
	})

	t.Run("unknown signal rejected", func(t *testing.T) {
		svc, _, _, _ := newPreferenceFixture()
		err := svc.SetPinned("u1", "sig-missing", true)
		if !domain.IsCode(err, domain.ErrSignalNotFound) {
			t.Errorf("Expected %s, got %v", domain.ErrSignalNotFound, err)
		}
	})
}

func TestRecordClick(t *testing.T) {
	t.Run("credits every condition category", func(t *testing.T) {
		svc, _, _, interactions := newPreferenceFixture()
		if err := svc.RecordClick("u1", "sig-1"); err != nil {
			t.Fatalf("RecordClick returned error: %v", err)
		}
		if len(interactions.clicks) != 2 {
			t.Fatalf("Expected 2 category credits, got %d", len(interactions.clicks))
		}
	})

	t.Run("signal without conditions records nothing", func(t *testing.T) {
		svc, signals, _, interactions := newPreferenceFixture()
		signals.items = append(signals.items, domain.Signal{
			ID:       "sig-2",
			OwnerID:  "owner",
			Target:   domain.Target{Kind: domain.TargetGlobal},
			IsActive: true,
		})
		if err := svc.RecordClick("u1", "sig-2"); err != nil {
			t.Fatalf("RecordClick returned error: %v", err)
		}
		if len(interactions.clicks) != 0 {
			t.Errorf("Expected no credits, got %d", len(interactions.clicks))
		}
	})

	t.Run("unknown signal rejected", func(t *testing.T) {
		svc, _, _, _ := newPreferenceFixture()
		err := svc.RecordClick("u1", "sig-missing")
		if !domain.IsCode(err, domain.ErrSignalNotFound) {
			t.Errorf("Expected %s, got %v", domain.ErrSignalNotFound, err)
		}
	})
}
