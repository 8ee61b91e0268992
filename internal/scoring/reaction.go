// Package scoring derives sighting scores from reaction tallies and detects
// viral activity surges for signals.
package scoring

import (
	"math"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// Reaction weights for the base score.
const (
	upvoteWeight     = 1
	downvoteWeight   = 1
	confirmWeight    = 2
	disputeWeight    = 2
	spamReportWeight = 5
)

// Hot-score decay parameters, calibrated against known score/age fixtures.
// The +2h offset keeps brand-new posts from dividing by near zero; 1.5 is
// the decay gravity.
const (
	hotScoreAgeOffset = 2.0
	hotScoreGravity   = 1.5
)

// Visibility thresholds.
const (
	spamHideThreshold  = 3
	scoreHideThreshold = -5
	lowQualityFloor    = -4
)

// BaseScore computes a sighting's base score from its reaction tallies.
func BaseScore(counts domain.ReactionCounts) int {
	return counts.Upvotes*upvoteWeight -
		counts.Downvotes*downvoteWeight +
		counts.Confirmations*confirmWeight -
		counts.Disputes*disputeWeight -
		counts.SpamReports*spamReportWeight
}

// HotScore computes the time-decayed popularity score:
//
//	sign(s) * log10(1+|s|) / (ageHours + 2)^1.5
//
// The sign of the result always matches the sign of the base score, and for
// a fixed score the value strictly decreases with age.
func HotScore(baseScore int, ageHours float64) float64 {
	if baseScore == 0 {
		return 0
	}
	if ageHours < 0 {
		ageHours = 0
	}

	sign := 1.0
	if baseScore < 0 {
		sign = -1.0
	}

	magnitude := math.Log10(1 + math.Abs(float64(baseScore)))
	decay := math.Pow(ageHours+hotScoreAgeOffset, hotScoreGravity)
	return sign * magnitude / decay
}

// ClassifyVisibility classifies a sighting from its score and spam-report
// count. The spam check takes priority: three or more reports force hidden
// even with a high positive score.
func ClassifyVisibility(score, spamReports int) domain.Visibility {
	if spamReports >= spamHideThreshold || score <= scoreHideThreshold {
		return domain.VisibilityHidden
	}
	if score >= lowQualityFloor && score <= -1 {
		return domain.VisibilityLowQuality
	}
	return domain.VisibilityVisible
}
