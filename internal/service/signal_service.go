package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/membership"
	"github.com/sightnet/signals-backend-go/internal/spatial"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// SignalInput carries the caller-supplied fields for creating or updating a
// signal.
type SignalInput struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Target         domain.Target            `json:"target"`
	Triggers       []domain.TriggerKind     `json:"triggers"`
	Conditions     *domain.SignalConditions `json:"conditions"`
	Classification domain.Classification    `json:"classification"`
}

// SignalService owns the write side of signals: validation, quota
// enforcement, subscriptions, and lifecycle.
type SignalService struct {
	signals       SignalStore
	geofences     GeofenceStore
	users         UserStore
	subscriptions SubscriptionStore
	interactions  InteractionStore
	snapshots     SnapshotStore
	log           zerolog.Logger
}

// NewSignalService creates a new signal service
func NewSignalService(
	signals SignalStore,
	geofences GeofenceStore,
	users UserStore,
	subscriptions SubscriptionStore,
	interactions InteractionStore,
	snapshots SnapshotStore,
	log zerolog.Logger,
) *SignalService {
	return &SignalService{
		signals:       signals,
		geofences:     geofences,
		users:         users,
		subscriptions: subscriptions,
		interactions:  interactions,
		snapshots:     snapshots,
		log:           log.With().Str("component", "signal").Logger(),
	}
}

// Create validates and stores a new signal owned by ownerID.
func (s *SignalService) Create(ownerID domain.UserID, input SignalInput) (*domain.Signal, error) {
	if ownerID == "" {
		return nil, domain.NewFieldError(domain.ErrOwnerRequired, "signal owner is required", "ownerId")
	}

	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if owner == nil {
		return nil, domain.NewError(domain.ErrUserNotFound, "owner does not exist")
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.validateQuota(input, owner.Tier); err != nil {
		return nil, err
	}

	classification := input.Classification
	if classification == "" {
		classification = domain.ClassPersonal
	}

	now := time.Now().Unix()
	sig := &domain.Signal{
		ID:             domain.SignalID(uuid.NewString()),
		Name:           input.Name,
		Description:    input.Description,
		OwnerID:        ownerID,
		Target:         input.Target,
		Triggers:       input.Triggers,
		Conditions:     input.Conditions,
		Classification: classification,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.signals.Create(sig); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("signal_id", string(sig.ID)).
		Str("owner_id", string(ownerID)).
		Str("target_kind", string(sig.Target.Kind)).
		Msg("signal created")

	return sig, nil
}

// Update validates and applies changes to a signal. Only the owner may
// update it; ownership itself never changes.
func (s *SignalService) Update(actorID domain.UserID, signalID domain.SignalID, input SignalInput) (*domain.Signal, error) {
	sig, err := s.mustGet(signalID)
	if err != nil {
		return nil, err
	}
	if sig.OwnerID != actorID {
		return nil, domain.NewError(domain.ErrSignalUnauthorized, "only the owner can modify a signal")
	}

	owner, err := s.users.GetByID(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if owner == nil {
		return nil, domain.NewError(domain.ErrUserNotFound, "owner does not exist")
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if err := s.validateQuota(input, owner.Tier); err != nil {
		return nil, err
	}

	sig.Name = input.Name
	sig.Description = input.Description
	sig.Target = input.Target
	sig.Triggers = input.Triggers
	sig.Conditions = input.Conditions
	if input.Classification != "" {
		sig.Classification = input.Classification
	}
	sig.UpdatedAt = time.Now().Unix()

	if err := s.signals.Update(sig); err != nil {
		return nil, err
	}
	return sig, nil
}

// Delete removes a signal. Only the owner may delete it.
func (s *SignalService) Delete(actorID domain.UserID, signalID domain.SignalID) error {
	sig, err := s.mustGet(signalID)
	if err != nil {
		return err
	}
	if sig.OwnerID != actorID {
		return domain.NewError(domain.ErrSignalUnauthorized, "only the owner can delete a signal")
	}
	return s.signals.Delete(signalID)
}

// SetActive activates or deactivates a signal. Only the owner may toggle it.
func (s *SignalService) SetActive(actorID domain.UserID, signalID domain.SignalID, active bool) (*domain.Signal, error) {
	sig, err := s.mustGet(signalID)
	if err != nil {
		return nil, err
	}
	if sig.OwnerID != actorID {
		return nil, domain.NewError(domain.ErrSignalUnauthorized, "only the owner can modify a signal")
	}

	sig.IsActive = active
	sig.UpdatedAt = time.Now().Unix()
	if err := s.signals.Update(sig); err != nil {
		return nil, err
	}
	return sig, nil
}

// Get retrieves a signal and counts the view.
func (s *SignalService) Get(signalID domain.SignalID) (*domain.Signal, error) {
	sig, err := s.mustGet(signalID)
	if err != nil {
		return nil, err
	}
	if err := s.signals.IncrementViewCount(signalID); err != nil {
		return nil, err
	}
	if err := s.snapshots.Upsert(domain.ActivitySnapshot{
		SignalID:     signalID,
		SnapshotDate: today(),
		ViewCount:    1,
	}); err != nil {
		return nil, err
	}
	return sig, nil
}

// Subscribe adds userID as a subscriber of an active signal.
func (s *SignalService) Subscribe(userID domain.UserID, signalID domain.SignalID) error {
	sig, err := s.mustGet(signalID)
	if err != nil {
		return err
	}
	if !sig.IsActive {
		return domain.NewError(domain.ErrSignalNotActive, "cannot subscribe to an inactive signal")
	}

	subscribed, err := s.subscriptions.IsSubscribed(signalID, userID)
	if err != nil {
		return err
	}
	if subscribed {
		return domain.NewError(domain.ErrAlreadySubscribed, "already subscribed to this signal")
	}

	if err := s.subscriptions.Subscribe(signalID, userID, time.Now().Unix()); err != nil {
		return err
	}
	if err := s.signals.AdjustSubscriberCount(signalID, 1); err != nil {
		return err
	}
	if err := s.snapshots.Upsert(domain.ActivitySnapshot{
		SignalID:       signalID,
		SnapshotDate:   today(),
		NewSubscribers: 1,
	}); err != nil {
		return err
	}

	// Subscribing is a strong preference hint for the signal's categories.
	if sig.Conditions != nil {
		for _, categoryID := range sig.Conditions.CategoryIDs {
			if err := s.interactions.RecordSubscription(userID, categoryID); err != nil {
				return err
			}
		}
	}

	return nil
}

// Unsubscribe removes userID's subscription.
func (s *SignalService) Unsubscribe(userID domain.UserID, signalID domain.SignalID) error {
	if _, err := s.mustGet(signalID); err != nil {
		return err
	}

	subscribed, err := s.subscriptions.IsSubscribed(signalID, userID)
	if err != nil {
		return err
	}
	if !subscribed {
		return domain.NewError(domain.ErrNotSubscribed, "not subscribed to this signal")
	}

	if err := s.subscriptions.Unsubscribe(signalID, userID); err != nil {
		return err
	}
	return s.signals.AdjustSubscriberCount(signalID, -1)
}

func (s *SignalService) mustGet(signalID domain.SignalID) (*domain.Signal, error) {
	sig, err := s.signals.GetByID(signalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load signal: %w", err)
	}
	if sig == nil {
		return nil, domain.NewError(domain.ErrSignalNotFound, "signal does not exist")
	}
	return sig, nil
}

// validateInput checks the structural validity of a signal definition.
func (s *SignalService) validateInput(input SignalInput) error {
	if input.Name == "" {
		return domain.NewFieldError(domain.ErrNameRequired, "signal name is required", "name")
	}
	if len(input.Name) > maxNameLength {
		return domain.NewFieldError(domain.ErrNameTooLong,
			fmt.Sprintf("signal name must be at most %d characters", maxNameLength), "name")
	}
	if len(input.Description) > maxDescriptionLength {
		return domain.NewFieldError(domain.ErrDescriptionTooLong,
			fmt.Sprintf("signal description must be at most %d characters", maxDescriptionLength), "description")
	}

	if len(input.Triggers) == 0 {
		return domain.NewFieldError(domain.ErrTriggersRequired, "at least one trigger is required", "triggers")
	}
	seen := make(map[domain.TriggerKind]bool, len(input.Triggers))
	for _, t := range input.Triggers {
		if seen[t] {
			return domain.NewFieldError(domain.ErrDuplicateTriggers,
				fmt.Sprintf("trigger %q is listed more than once", t), "triggers")
		}
		seen[t] = true
	}

	if c := input.Conditions; c != nil && c.MinScore != nil && c.MaxScore != nil && *c.MinScore > *c.MaxScore {
		return domain.NewFieldError(domain.ErrInvalidScoreRange, "minScore cannot exceed maxScore", "conditions")
	}

	switch input.Target.Kind {
	case domain.TargetPolygon:
		if !input.Target.Polygon.IsValid() {
			return domain.NewFieldError(domain.ErrInvalidPolygon, "polygon targets need at least 3 points", "target")
		}
	case domain.TargetGeofence:
		if input.Target.GeofenceID == "" {
			return domain.NewFieldError(domain.ErrGeofenceRequired, "geofence targets need a geofenceId", "target")
		}
	case domain.TargetGlobal:
		// No structural requirements.
	default:
		return domain.NewFieldError(domain.ErrInvalidPolygon,
			fmt.Sprintf("unknown target kind %q", input.Target.Kind), "target")
	}

	return nil
}

// validateQuota runs every relevant tier quota check for the input and joins
// the failures, so callers see all violated limits at once.
func (s *SignalService) validateQuota(input SignalInput, tier domain.MembershipTier) error {
	var failures []error

	switch input.Target.Kind {
	case domain.TargetGlobal:
		if err := membership.ValidateGlobalSignal(tier); err != nil {
			failures = append(failures, err)
		}

	case domain.TargetPolygon:
		points := input.Target.Polygon.Points
		if err := membership.ValidateGeofenceArea(spatial.PolygonAreaKm2(points), tier); err != nil {
			failures = append(failures, err)
		}
		if err := membership.ValidatePolygonPoints(len(points), tier); err != nil {
			failures = append(failures, err)
		}

	case domain.TargetGeofence:
		g, err := s.geofences.GetByID(input.Target.GeofenceID)
		if err != nil {
			return fmt.Errorf("failed to resolve geofence: %w", err)
		}
		if g == nil {
			return domain.NewFieldError(domain.ErrGeofenceRequired, "referenced geofence does not exist", "target")
		}
		if err := membership.ValidateGeofenceArea(spatial.PolygonAreaKm2(g.Polygon.Points), tier); err != nil {
			failures = append(failures, err)
		}
	}

	if input.Conditions != nil {
		if err := membership.ValidateConditionTypes(len(input.Conditions.TypeIDs), tier); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
