// Package membership enforces per-tier quota limits on signal creation.
package membership

import (
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// Limits describes the quota table for one membership tier. Zero-valued
// limits mean unlimited (admin).
type Limits struct {
	MaxAreaKm2        float64
	MaxPolygonPoints  int
	MaxConditionTypes int
	CanCreateGlobal   bool
	Unlimited         bool
}

var tierLimits = map[domain.MembershipTier]Limits{
	domain.TierFree: {
		MaxAreaKm2:        25,
		MaxPolygonPoints:  20,
		MaxConditionTypes: 10,
	},
	domain.TierPaid: {
		MaxAreaKm2:        500,
		MaxPolygonPoints:  100,
		MaxConditionTypes: 50,
	},
	domain.TierAdmin: {
		CanCreateGlobal: true,
		Unlimited:       true,
	},
}

// LimitsForTier returns the quota limits for a tier. Unknown tiers get the
// free limits.
func LimitsForTier(tier domain.MembershipTier) Limits {
	if l, ok := tierLimits[tier]; ok {
		return l
	}
	return tierLimits[domain.TierFree]
}

func upgradeHint(tier domain.MembershipTier) string {
	if tier == domain.TierFree {
		return " Upgrade to paid for a higher limit."
	}
	return ""
}

// ValidateGeofenceArea checks a target area against the tier's limit.
func ValidateGeofenceArea(areaKm2 float64, tier domain.MembershipTier) error {
	l := LimitsForTier(tier)
	if l.Unlimited || areaKm2 <= l.MaxAreaKm2 {
		return nil
	}
	return domain.NewFieldError(
		domain.ErrGeofenceAreaExceeded,
		fmt.Sprintf("geofence area %.1f km² exceeds the %s tier limit of %.0f km².%s",
			areaKm2, tier, l.MaxAreaKm2, upgradeHint(tier)),
		"target",
	)
}

// ValidatePolygonPoints checks a polygon's vertex count against the tier's
// limit.
func ValidatePolygonPoints(pointCount int, tier domain.MembershipTier) error {
	l := LimitsForTier(tier)
	if l.Unlimited || pointCount <= l.MaxPolygonPoints {
		return nil
	}
	return domain.NewFieldError(
		domain.ErrPolygonPointsExceeded,
		fmt.Sprintf("polygon has %d points, above the %s tier limit of %d.%s",
			pointCount, tier, l.MaxPolygonPoints, upgradeHint(tier)),
		"target",
	)
}

// ValidateConditionTypes checks the number of condition sighting types
// against the tier's limit.
func ValidateConditionTypes(typeCount int, tier domain.MembershipTier) error {
	l := LimitsForTier(tier)
	if l.Unlimited || typeCount <= l.MaxConditionTypes {
		return nil
	}
	return domain.NewFieldError(
		domain.ErrSightingTypesExceeded,
		fmt.Sprintf("conditions list %d sighting types, above the %s tier limit of %d.%s",
			typeCount, tier, l.MaxConditionTypes, upgradeHint(tier)),
		"conditions",
	)
}

// ValidateGlobalSignal checks whether the tier may create global signals.
func ValidateGlobalSignal(tier domain.MembershipTier) error {
	if LimitsForTier(tier).CanCreateGlobal {
		return nil
	}
	return domain.NewFieldError(
		domain.ErrGlobalNotAllowed,
		fmt.Sprintf("the %s tier cannot create global signals.", tier),
		"target",
	)
}
