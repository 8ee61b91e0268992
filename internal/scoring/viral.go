package scoring

import (
	"sort"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// Viral detection parameters. A signal is surging when its latest day's
// activity is at least surgeRatio times its trailing baseline, or when a
// signal with no prior baseline suddenly records minColdStartActivity.
const (
	surgeRatio           = 2.0
	minColdStartActivity = 10.0
	baselineDays         = 7
)

// Per-day activity weights: a new subscriber is a stronger engagement signal
// than a sighting, which is stronger than a view.
const (
	subscriberActivityWeight = 3.0
	sightingActivityWeight   = 2.0
	viewActivityWeight       = 1.0
)

// dayActivity collapses one snapshot into a single activity value.
func dayActivity(s domain.ActivitySnapshot) float64 {
	return float64(s.NewSubscribers)*subscriberActivityWeight +
		float64(s.NewSightings)*sightingActivityWeight +
		float64(s.ViewCount)*viewActivityWeight
}

// IsViral compares a signal's most recent day of activity against the mean
// of up to seven prior days. Snapshots may arrive in any order; they are
// sorted by date here. No snapshots, or no activity at all, means no surge.
func IsViral(snapshots []domain.ActivitySnapshot) bool {
	if len(snapshots) == 0 {
		return false
	}

	sorted := make([]domain.ActivitySnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SnapshotDate > sorted[j].SnapshotDate
	})

	latest := dayActivity(sorted[0])
	if latest <= 0 {
		return false
	}

	prior := sorted[1:]
	if len(prior) > baselineDays {
		prior = prior[:baselineDays]
	}
	if len(prior) == 0 {
		// No history to compare against; only a genuinely large day counts.
		return latest >= minColdStartActivity
	}

	var sum float64
	for _, s := range prior {
		sum += dayActivity(s)
	}
	baseline := sum / float64(len(prior))

	if baseline == 0 {
		return latest >= minColdStartActivity
	}
	return latest >= baseline*surgeRatio
}
