package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/match"
	"github.com/sightnet/signals-backend-go/internal/reputation"
	"github.com/sightnet/signals-backend-go/internal/spatial"
)

// EvaluatorService finds the active signals matched by a sighting.
type EvaluatorService struct {
	signals     SignalStore
	geofences   GeofenceStore
	sightings   SightingStore
	reputations ReputationStore
	log         zerolog.Logger
}

// NewEvaluatorService creates a new evaluator service
func NewEvaluatorService(
	signals SignalStore,
	geofences GeofenceStore,
	sightings SightingStore,
	reputations ReputationStore,
	log zerolog.Logger,
) *EvaluatorService {
	return &EvaluatorService{
		signals:     signals,
		geofences:   geofences,
		sightings:   sightings,
		reputations: reputations,
		log:         log.With().Str("component", "evaluator").Logger(),
	}
}

// Evaluate returns every active signal whose target geography and conditions
// match the sighting. A signal referencing an unresolvable geofence is
// silently excluded; a missing sighting is a fatal precondition.
func (s *EvaluatorService) Evaluate(ctx context.Context, sightingID domain.SightingID) ([]domain.Signal, error) {
	sighting, err := s.sightings.GetByID(sightingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sighting: %w", err)
	}
	if sighting == nil {
		return nil, domain.NewError(domain.ErrSightingNotFound, "sighting does not exist")
	}

	rep, err := s.reputations.GetByUserID(sighting.ReporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporter reputation: %w", err)
	}

	data := domain.SightingMatchData{
		CategoryID:         sighting.CategoryID,
		TypeID:             sighting.TypeID,
		Tags:               sighting.Tags,
		Importance:         sighting.Importance,
		Score:              sighting.Score,
		ReporterTrustLevel: reputation.ResolveTier(rep),
	}

	active, err := s.signals.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active signals: %w", err)
	}

	// Geofences are often shared between signals; resolve each at most once
	// per evaluation.
	geofenceCache := make(map[domain.GeofenceID]*domain.Geofence)

	var matched []domain.Signal
	for _, sig := range active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := s.matchesLocation(sig.Target, sighting.Location, geofenceCache)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !match.MatchesConditions(sig.Conditions, data) {
			continue
		}
		matched = append(matched, sig)
	}

	s.log.Debug().
		Str("sighting_id", string(sightingID)).
		Int("candidates", len(active)).
		Int("matched", len(matched)).
		Msg("evaluated sighting against active signals")

	return matched, nil
}

// matchesLocation applies a signal target's geographic test to a point.
func (s *EvaluatorService) matchesLocation(target domain.Target, loc domain.LatLng, cache map[domain.GeofenceID]*domain.Geofence) (bool, error) {
	switch target.Kind {
	case domain.TargetGlobal:
		return true, nil

	case domain.TargetPolygon:
		if target.Polygon == nil {
			return false, nil
		}
		return spatial.PointInPolygon(loc, target.Polygon.Points), nil

	case domain.TargetGeofence:
		g, err := s.resolveGeofence(target.GeofenceID, cache)
		if err != nil {
			return false, err
		}
		if g == nil {
			// Dangling geofence reference: the signal simply does not match.
			return false, nil
		}
		return spatial.PointInPolygon(loc, g.Polygon.Points), nil
	}

	return false, nil
}

func (s *EvaluatorService) resolveGeofence(id domain.GeofenceID, cache map[domain.GeofenceID]*domain.Geofence) (*domain.Geofence, error) {
	if g, ok := cache[id]; ok {
		return g, nil
	}
	g, err := s.geofences.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve geofence: %w", err)
	}
	cache[id] = g
	return g, nil
}
