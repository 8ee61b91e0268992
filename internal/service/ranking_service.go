package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/scoring"
	"github.com/sightnet/signals-backend-go/internal/spatial"
)

// Rank score weights. Classification dominates everything: an official
// signal outranks any community signal on popularity alone.
const (
	officialBase  = 50000.0
	communityBase = 3000.0
	verifiedBase  = 2000.0
	personalBase  = 1000.0

	viewWeight       = 0.1
	subscriberWeight = 2.0
	sightingWeight   = 0.5

	categoryBoostPerMatch = 0.25
	viralMultiplier       = 1.5
	distancePenaltyPerKm  = 2.0
	unimportantPenalty    = 100000.0

	topCategoryCount      = 3
	snapshotWindowDays    = 8
	enrichmentConcurrency = 8
)

// RankOptions tune one ranking request.
type RankOptions struct {
	UserLocation  *domain.LatLng
	IncludeHidden bool
	Filter        domain.SignalFilter
}

// RankingService produces a personalized, ranked ordering of a user's
// visible signals.
type RankingService struct {
	signals      SignalStore
	geofences    GeofenceStore
	users        UserStore
	privacy      PrivacyStore
	interactions InteractionStore
	preferences  PreferenceStore
	snapshots    SnapshotStore
	log          zerolog.Logger
}

// NewRankingService creates a new ranking service
func NewRankingService(
	signals SignalStore,
	geofences GeofenceStore,
	users UserStore,
	privacy PrivacyStore,
	interactions InteractionStore,
	preferences PreferenceStore,
	snapshots SnapshotStore,
	log zerolog.Logger,
) *RankingService {
	return &RankingService{
		signals:      signals,
		geofences:    geofences,
		users:        users,
		privacy:      privacy,
		interactions: interactions,
		preferences:  preferences,
		snapshots:    snapshots,
		log:          log.With().Str("component", "ranking").Logger(),
	}
}

// Rank computes the ranked signal list for a user. Hidden signals are
// dropped unless opts.IncludeHidden; pinned signals always precede
// non-pinned ones regardless of score.
func (s *RankingService) Rank(ctx context.Context, userID domain.UserID, opts RankOptions) ([]domain.RankedSignal, error) {
	rc, err := s.buildContext(userID, opts)
	if err != nil {
		return nil, err
	}

	signals, err := s.signals.ListWithSubscriptionCounts(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}

	candidates := signals[:0]
	for _, sig := range signals {
		if !opts.IncludeHidden && rc.HiddenSignalIDs[sig.ID] {
			continue
		}
		candidates = append(candidates, sig)
	}

	// Per-signal enrichment is independent; fan out with bounded
	// concurrency and gather before sorting.
	ranked := make([]domain.RankedSignal, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)

	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rs, err := s.enrich(candidates[i], rc)
			if err != nil {
				return err
			}
			ranked[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsPinned != ranked[j].IsPinned {
			return ranked[i].IsPinned
		}
		return ranked[i].RankScore > ranked[j].RankScore
	})

	s.log.Debug().
		Str("user_id", string(userID)).
		Int("signals", len(ranked)).
		Bool("personalized", rc.Personalization).
		Msg("ranked signal list")

	return ranked, nil
}

// buildContext loads everything user-specific for the ranking pass.
// Privacy flags default to false when no settings record exists.
func (s *RankingService) buildContext(userID domain.UserID, opts RankOptions) (*domain.RankingContext, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrUserNotFound, "user does not exist")
	}

	settings, err := s.privacy.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load privacy settings: %w", err)
	}

	hidden, err := s.preferences.GetHiddenSignalIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hidden signals: %w", err)
	}
	pinned, err := s.preferences.GetPinnedSignalIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pinned signals: %w", err)
	}
	unimportant, err := s.preferences.GetUnimportantSignalIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unimportant signals: %w", err)
	}

	rc := &domain.RankingContext{
		UserID:               userID,
		UserTier:             user.Tier,
		HiddenSignalIDs:      hidden,
		PinnedSignalIDs:      pinned,
		UnimportantSignalIDs: unimportant,
		Personalization:      settings.EnablePersonalization,
		LocationRanking:      settings.EnableLocationSharing && opts.UserLocation != nil,
	}
	if rc.LocationRanking {
		rc.UserLocation = opts.UserLocation
	}

	if rc.Personalization {
		prefs, err := s.interactions.GetTopCategoriesForUser(userID, topCategoryCount)
		if err != nil {
			return nil, fmt.Errorf("failed to load category preferences: %w", err)
		}
		rc.CategoryPreferences = prefs
	}

	return rc, nil
}

// enrich computes one signal's ranking attributes. Pure over its inputs
// apart from repository reads; safe to run concurrently per signal.
func (s *RankingService) enrich(sig domain.Signal, rc *domain.RankingContext) (domain.RankedSignal, error) {
	rs := domain.RankedSignal{
		Signal:        sig,
		CategoryBoost: 1.0,
		IsPinned:      rc.PinnedSignalIDs[sig.ID],
	}

	if rc.LocationRanking {
		if point, ok := s.representativePoint(sig.Target); ok {
			d := spatial.DistanceKm(*rc.UserLocation, point)
			rs.DistanceKm = &d
		}
	}

	snapshots, err := s.snapshots.GetRecentForSignal(sig.ID, snapshotWindowDays)
	if err != nil {
		return rs, fmt.Errorf("failed to load activity snapshots: %w", err)
	}
	rs.IsViralBoosted = scoring.IsViral(snapshots)

	if rc.Personalization {
		rs.CategoryBoost = categoryBoost(sig.Conditions, rc.CategoryPreferences)
	}

	rs.RankScore = computeRankScore(rs, rc)
	return rs, nil
}

// representativePoint returns the point standing in for a signal's target
// geography: the vertex centroid for polygon and geofence targets, nothing
// for global ones or dangling geofence references.
func (s *RankingService) representativePoint(target domain.Target) (domain.LatLng, bool) {
	switch target.Kind {
	case domain.TargetPolygon:
		if target.Polygon == nil || len(target.Polygon.Points) == 0 {
			return domain.LatLng{}, false
		}
		return spatial.Centroid(target.Polygon.Points), true

	case domain.TargetGeofence:
		g, err := s.geofences.GetByID(target.GeofenceID)
		if err != nil || g == nil || len(g.Polygon.Points) == 0 {
			return domain.LatLng{}, false
		}
		return spatial.Centroid(g.Polygon.Points), true
	}

	return domain.LatLng{}, false
}

// categoryBoost is a multiplier >= 1.0, raised for every top preferred
// category the signal's conditions mention.
func categoryBoost(conditions *domain.SignalConditions, prefs []domain.CategoryPreference) float64 {
	if conditions == nil || len(conditions.CategoryIDs) == 0 || len(prefs) == 0 {
		return 1.0
	}

	signalCategories := make(map[domain.CategoryID]bool, len(conditions.CategoryIDs))
	for _, id := range conditions.CategoryIDs {
		signalCategories[id] = true
	}

	boost := 1.0
	for _, p := range prefs {
		if signalCategories[p.CategoryID] {
			boost += categoryBoostPerMatch
		}
	}
	return boost
}

func classificationBase(c domain.Classification) float64 {
	switch c {
	case domain.ClassOfficial:
		return officialBase
	case domain.ClassCommunity:
		return communityBase
	case domain.ClassVerified:
		return verifiedBase
	case domain.ClassPersonal:
		return personalBase
	}
	return 0
}

// computeRankScore combines classification, popularity, personalization,
// virality, distance, and the user's unimportant flag into one score.
func computeRankScore(rs domain.RankedSignal, rc *domain.RankingContext) float64 {
	score := classificationBase(rs.Classification)
	score += float64(rs.Analytics.ViewCount) * viewWeight
	score += float64(rs.Analytics.SubscriberCount) * subscriberWeight
	score += float64(rs.Analytics.SightingCount) * sightingWeight

	score *= rs.CategoryBoost
	if rs.IsViralBoosted {
		score *= viralMultiplier
	}

	if rs.DistanceKm != nil {
		score -= *rs.DistanceKm * distancePenaltyPerKm
	}

	if rs.Classification == domain.ClassCommunity && rc.UnimportantSignalIDs[rs.ID] {
		score -= unimportantPenalty
	}

	return score
}
