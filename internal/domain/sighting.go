package domain

// Importance grades how urgent a sighting report is.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceNormal   Importance = "normal"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// Visibility classifies whether a sighting should be shown, demoted, or
// suppressed based on its reaction-derived score.
type Visibility string

const (
	VisibilityVisible    Visibility = "visible"
	VisibilityLowQuality Visibility = "low_quality"
	VisibilityHidden     Visibility = "hidden"
)

// ReactionCounts are the per-sighting reaction tallies. All counts are
// non-negative and only mutated through reaction recording, never directly.
type ReactionCounts struct {
	Upvotes       int `json:"upvotes" db:"upvotes"`
	Downvotes     int `json:"downvotes" db:"downvotes"`
	Confirmations int `json:"confirmations" db:"confirmations"`
	Disputes      int `json:"disputes" db:"disputes"`
	SpamReports   int `json:"spamReports" db:"spam_reports"`
}

// ReactionKind is a single user's reaction to a sighting.
type ReactionKind string

const (
	ReactionUpvote     ReactionKind = "upvote"
	ReactionDownvote   ReactionKind = "downvote"
	ReactionConfirm    ReactionKind = "confirm"
	ReactionDispute    ReactionKind = "dispute"
	ReactionSpamReport ReactionKind = "spam_report"
)

// Sighting is a single report at a location. Score and HotScore are derived
// from reactions and recomputed whenever a reaction is recorded.
type Sighting struct {
	ID         SightingID `json:"id"`
	CategoryID CategoryID `json:"categoryId"`
	TypeID     TypeID     `json:"typeId"`
	Location   LatLng     `json:"location"`
	Tags       []string   `json:"tags,omitempty"`
	Importance Importance `json:"importance"`
	ReporterID UserID     `json:"reporterId"`
	ObservedAt int64      `json:"observedAt"` // Unix timestamp
	Score      int        `json:"score"`
	HotScore   float64    `json:"hotScore"`
	Visibility Visibility `json:"visibility"`
}

// SightingMatchData is the flattened view of a sighting that condition
// matching runs against. Built once per evaluation.
type SightingMatchData struct {
	CategoryID CategoryID
	TypeID     TypeID
	Tags       []string
	Importance Importance
	Score      int
	ReporterTrustLevel TrustTier
}
