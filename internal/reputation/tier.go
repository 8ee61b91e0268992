// Package reputation maps accumulated reputation scores to ordinal trust
// tiers.
package reputation

import "github.com/sightnet/signals-backend-go/internal/domain"

// Score thresholds for threshold-based tiers. verified is assigned
// out-of-band and never reached by score alone.
const (
	newThreshold     = 10
	trustedThreshold = 50
)

// TierForScore resolves a reputation score to a trust tier. A manual tier,
// when present on the record, takes precedence over thresholds.
func TierForScore(score int) domain.TrustTier {
	switch {
	case score >= trustedThreshold:
		return domain.TrustTrusted
	case score >= newThreshold:
		return domain.TrustNew
	default:
		return domain.TrustUnverified
	}
}

// ResolveTier resolves the effective tier for a reputation record, honoring
// a manual elevation when set. A nil record means the user has no reputation
// yet and resolves to unverified.
func ResolveTier(rep *domain.Reputation) domain.TrustTier {
	if rep == nil {
		return domain.TrustUnverified
	}
	if rep.ManualTier != "" {
		return rep.ManualTier
	}
	return TierForScore(rep.Score)
}

// Rank returns the ordinal position of a trust tier for >= comparisons.
// Unknown tiers rank below unverified.
func Rank(tier domain.TrustTier) int {
	switch tier {
	case domain.TrustVerified:
		return 4
	case domain.TrustTrusted:
		return 3
	case domain.TrustNew:
		return 2
	case domain.TrustUnverified:
		return 1
	}
	return 0
}

// PointsToNextTier returns how many points remain until the next
// threshold-based tier, and false when no threshold tier is above the score.
func PointsToNextTier(score int) (int, bool) {
	switch {
	case score < newThreshold:
		return newThreshold - score, true
	case score < trustedThreshold:
		return trustedThreshold - score, true
	default:
		return 0, false
	}
}
