package domain

// ActivitySnapshot is one immutable row of daily activity for a signal.
// Rows are append-only, one per signal per day, keyed on
// (signal_id, snapshot_date).
type ActivitySnapshot struct {
	SignalID       SignalID `json:"signalId"`
	SnapshotDate   string   `json:"snapshotDate"` // YYYY-MM-DD
	NewSubscribers int      `json:"newSubscribers"`
	NewSightings   int      `json:"newSightings"`
	ViewCount      int      `json:"viewCount"`
}
