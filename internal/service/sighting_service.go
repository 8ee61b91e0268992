package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/scoring"
)

// SightingInput carries the caller-supplied fields for reporting a sighting.
type SightingInput struct {
	CategoryID domain.CategoryID `json:"categoryId"`
	TypeID     domain.TypeID     `json:"typeId"`
	Location   domain.LatLng     `json:"location"`
	Tags       []string          `json:"tags"`
	Importance domain.Importance `json:"importance"`
	ObservedAt int64             `json:"observedAt"`
}

// SightingService owns the sighting write side: reporting and reactions.
// Signal matching for a new report is delegated to the evaluator; delivery
// of matches is the caller's concern.
type SightingService struct {
	sightings SightingStore
	reactions ReactionStore
	signals   SignalStore
	snapshots SnapshotStore
	evaluator *EvaluatorService
	log       zerolog.Logger
}

// NewSightingService creates a new sighting service
func NewSightingService(
	sightings SightingStore,
	reactions ReactionStore,
	signals SignalStore,
	snapshots SnapshotStore,
	evaluator *EvaluatorService,
	log zerolog.Logger,
) *SightingService {
	return &SightingService{
		sightings: sightings,
		reactions: reactions,
		signals:   signals,
		snapshots: snapshots,
		evaluator: evaluator,
		log:       log.With().Str("component", "sighting").Logger(),
	}
}

// Report stores a new sighting, evaluates it against active signals, and
// records the match in each matched signal's analytics. The matched signals
// are returned for the caller to fan out.
func (s *SightingService) Report(ctx context.Context, reporterID domain.UserID, input SightingInput) (*domain.Sighting, []domain.Signal, error) {
	observedAt := input.ObservedAt
	if observedAt == 0 {
		observedAt = time.Now().Unix()
	}
	importance := input.Importance
	if importance == "" {
		importance = domain.ImportanceNormal
	}

	sighting := &domain.Sighting{
		ID:         domain.SightingID(uuid.NewString()),
		CategoryID: input.CategoryID,
		TypeID:     input.TypeID,
		Location:   input.Location,
		Tags:       input.Tags,
		Importance: importance,
		ReporterID: reporterID,
		ObservedAt: observedAt,
		Visibility: domain.VisibilityVisible,
	}
	if err := s.sightings.Create(sighting); err != nil {
		return nil, nil, err
	}

	matched, err := s.evaluator.Evaluate(ctx, sighting.ID)
	if err != nil {
		return nil, nil, err
	}

	for _, sig := range matched {
		if err := s.signals.IncrementSightingCount(sig.ID); err != nil {
			return nil, nil, err
		}
		if err := s.snapshots.Upsert(domain.ActivitySnapshot{
			SignalID:     sig.ID,
			SnapshotDate: today(),
			NewSightings: 1,
		}); err != nil {
			return nil, nil, err
		}
	}

	s.log.Info().
		Str("sighting_id", string(sighting.ID)).
		Int("matched_signals", len(matched)).
		Msg("sighting reported")

	return sighting, matched, nil
}

// React records a user's reaction to a sighting and recomputes the
// sighting's derived scores. Reacting twice replaces the earlier reaction.
func (s *SightingService) React(userID domain.UserID, sightingID domain.SightingID, kind domain.ReactionKind) (*domain.Sighting, error) {
	sighting, err := s.sightings.GetByID(sightingID)
	if err != nil {
		return nil, err
	}
	if sighting == nil {
		return nil, domain.NewError(domain.ErrSightingNotFound, "sighting does not exist")
	}

	if err := s.reactions.Upsert(sightingID, userID, kind); err != nil {
		return nil, err
	}
	return s.recomputeScores(sighting)
}

// RemoveReaction deletes a user's reaction and recomputes derived scores.
func (s *SightingService) RemoveReaction(userID domain.UserID, sightingID domain.SightingID) (*domain.Sighting, error) {
	sighting, err := s.sightings.GetByID(sightingID)
	if err != nil {
		return nil, err
	}
	if sighting == nil {
		return nil, domain.NewError(domain.ErrSightingNotFound, "sighting does not exist")
	}

	if err := s.reactions.Remove(sightingID, userID); err != nil {
		return nil, err
	}
	return s.recomputeScores(sighting)
}

func (s *SightingService) recomputeScores(sighting *domain.Sighting) (*domain.Sighting, error) {
	counts, err := s.reactions.CountsForSighting(sighting.ID)
	if err != nil {
		return nil, err
	}

	ageHours := time.Since(time.Unix(sighting.ObservedAt, 0)).Hours()
	score := scoring.BaseScore(counts)
	hotScore := scoring.HotScore(score, ageHours)
	visibility := scoring.ClassifyVisibility(score, counts.SpamReports)

	if err := s.sightings.UpdateDerivedScores(sighting.ID, score, hotScore, visibility); err != nil {
		return nil, err
	}

	sighting.Score = score
	sighting.HotScore = hotScore
	sighting.Visibility = visibility
	return sighting, nil
}
