package service

import (
	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// PreferenceService owns per-user signal preference flags and the category
// interaction counters feeding personalization.
type PreferenceService struct {
	signals      SignalStore
	preferences  PreferenceStore
	interactions InteractionStore
	log          zerolog.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(
	signals SignalStore,
	preferences PreferenceStore,
	interactions InteractionStore,
	log zerolog.Logger,
) *PreferenceService {
	return &PreferenceService{
		signals:      signals,
		preferences:  preferences,
		interactions: interactions,
		log:          log.With().Str("component", "preference").Logger(),
	}
}

// SetHidden hides or unhides a signal for a user.
func (s *PreferenceService) SetHidden(userID domain.UserID, signalID domain.SignalID, hidden bool) error {
	if err := s.ensureSignal(signalID); err != nil {
		return err
	}
	return s.preferences.SetHidden(userID, signalID, hidden)
}

// SetPinned pins or unpins a signal for a user.
func (s *PreferenceService) SetPinned(userID domain.UserID, signalID domain.SignalID, pinned bool) error {
	if err := s.ensureSignal(signalID); err != nil {
		return err
	}
	return s.preferences.SetPinned(userID, signalID, pinned)
}

// SetUnimportant marks or unmarks a signal as unimportant for a user.
func (s *PreferenceService) SetUnimportant(userID domain.UserID, signalID domain.SignalID, unimportant bool) error {
	if err := s.ensureSignal(signalID); err != nil {
		return err
	}
	return s.preferences.SetUnimportant(userID, signalID, unimportant)
}

// RecordClick registers a click on a signal for personalization, crediting
// every category the signal's conditions mention.
func (s *PreferenceService) RecordClick(userID domain.UserID, signalID domain.SignalID) error {
	sig, err := s.signals.GetByID(signalID)
	if err != nil {
		return err
	}
	if sig == nil {
		return domain.NewError(domain.ErrSignalNotFound, "signal does not exist")
	}
	if sig.Conditions == nil {
		return nil
	}
	for _, categoryID := range sig.Conditions.CategoryIDs {
		if err := s.interactions.RecordClick(userID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PreferenceService) ensureSignal(signalID domain.SignalID) error {
	sig, err := s.signals.GetByID(signalID)
	if err != nil {
		return err
	}
	if sig == nil {
		return domain.NewError(domain.ErrSignalNotFound, "signal does not exist")
	}
	return nil
}
