package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/reputation"
)

// ReputationProgress describes a user's trust standing and how far they are
// from the next threshold tier.
type ReputationProgress struct {
	Score            int              `json:"score"`
	Tier             domain.TrustTier `json:"tier"`
	PointsToNextTier int              `json:"pointsToNextTier"`
	AtTopTier        bool             `json:"atTopTier"`
}

// ProfileService covers the account-facing operations around the engine:
// first-login provisioning, privacy settings, and reputation standing.
type ProfileService struct {
	users       UserAccountStore
	privacy     PrivacyAdminStore
	reputations ReputationAdminStore
	log         zerolog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	users UserAccountStore,
	privacy PrivacyAdminStore,
	reputations ReputationAdminStore,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		users:       users,
		privacy:     privacy,
		reputations: reputations,
		log:         log.With().Str("component", "profile").Logger(),
	}
}

// EnsureUser returns the user record for an authenticated id, provisioning a
// free-tier account on first sight. Identity itself comes from the token;
// this only materializes the local row.
func (s *ProfileService) EnsureUser(userID domain.UserID, displayName string) (*domain.User, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u != nil {
		return u, nil
	}

	u = &domain.User{
		ID:          userID,
		DisplayName: displayName,
		Tier:        domain.TierFree,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.users.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.Info().Str("user_id", string(userID)).Msg("user provisioned")
	return u, nil
}

// GetPrivacy returns a user's privacy settings, defaulting both flags to
// off when no record exists.
func (s *ProfileService) GetPrivacy(userID domain.UserID) (domain.PrivacySettings, error) {
	return s.privacy.GetByUserID(userID)
}

// SetPrivacy stores a user's personalization and location-sharing opt-ins.
func (s *ProfileService) SetPrivacy(userID domain.UserID, settings domain.PrivacySettings) error {
	settings.UserID = userID
	return s.privacy.Upsert(settings)
}

// GetReputationProgress resolves a user's trust tier and distance to the
// next threshold. Users with no reputation record start at unverified with
// score 0.
func (s *ProfileService) GetReputationProgress(userID domain.UserID) (*ReputationProgress, error) {
	rep, err := s.reputations.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reputation: %w", err)
	}

	score := 0
	if rep != nil {
		score = rep.Score
	}
	remaining, hasNext := reputation.PointsToNextTier(score)
	return &ReputationProgress{
		Score:            score,
		Tier:             reputation.ResolveTier(rep),
		PointsToNextTier: remaining,
		AtTopTier:        !hasNext,
	}, nil
}

// AdjustReputation applies an out-of-band score delta to a user, e.g. from
// a moderation decision. Only admin-tier actors may adjust scores.
// Threshold tiers move automatically; verified stays a manual assignment.
func (s *ProfileService) AdjustReputation(actorID, userID domain.UserID, delta int) error {
	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return fmt.Errorf("failed to load actor: %w", err)
	}
	if actor == nil || actor.Tier != domain.TierAdmin {
		return domain.NewError(domain.ErrUserForbidden, "reputation adjustment requires an admin account")
	}

	target, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if target == nil {
		return domain.NewError(domain.ErrUserNotFound, "user does not exist")
	}

	if err := s.reputations.AddPoints(userID, delta, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to adjust reputation: %w", err)
	}
	s.log.Info().Str("user_id", string(userID)).Int("delta", delta).Msg("reputation adjusted")
	return nil
}
