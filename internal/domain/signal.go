package domain

// TargetKind discriminates a signal's geographic target.
type TargetKind string

const (
	TargetGlobal   TargetKind = "global"
	TargetGeofence TargetKind = "geofence"
	TargetPolygon  TargetKind = "polygon"
)

// Target is the tagged union describing where a signal watches. Exactly one
// of GeofenceID / Polygon is set depending on Kind; global targets carry
// neither.
type Target struct {
	Kind       TargetKind `json:"kind"`
	GeofenceID GeofenceID `json:"geofenceId,omitempty"`
	Polygon    *Polygon   `json:"polygon,omitempty"`
}

// TriggerKind names an event class a signal fires on.
type TriggerKind string

const (
	TriggerNewSighting TriggerKind = "new_sighting"
	TriggerTrending    TriggerKind = "trending"
	TriggerDigest      TriggerKind = "digest"
)

// Classification is a signal's provenance tier. Priority is total and fixed:
// official > community > verified > personal.
type Classification string

const (
	ClassOfficial  Classification = "official"
	ClassCommunity Classification = "community"
	ClassVerified  Classification = "verified"
	ClassPersonal  Classification = "personal"
)

// ClassificationPriority returns the ordinal priority of a classification,
// higher meaning more authoritative. Unknown values rank below personal.
func ClassificationPriority(c Classification) int {
	switch c {
	case ClassOfficial:
		return 4
	case ClassCommunity:
		return 3
	case ClassVerified:
		return 2
	case ClassPersonal:
		return 1
	}
	return 0
}

// ConditionOperator combines the specified condition predicates.
type ConditionOperator string

const (
	OperatorAnd ConditionOperator = "AND"
	OperatorOr  ConditionOperator = "OR"
)

// SignalConditions is the optional content filter attached to a signal.
// Every field is optional; absent fields impose no constraint. An empty set
// matches every sighting.
type SignalConditions struct {
	CategoryIDs   []CategoryID      `json:"categoryIds,omitempty"`
	TypeIDs       []TypeID          `json:"typeIds,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Importance    []Importance      `json:"importance,omitempty"`
	MinTrustLevel TrustTier         `json:"minTrustLevel,omitempty"`
	MinScore      *int              `json:"minScore,omitempty"`
	MaxScore      *int              `json:"maxScore,omitempty"`
	Operator      ConditionOperator `json:"operator,omitempty"`
}

// IsEmpty reports whether no predicate is specified at all.
func (c *SignalConditions) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.CategoryIDs) == 0 && len(c.TypeIDs) == 0 && len(c.Tags) == 0 &&
		len(c.Importance) == 0 && c.MinTrustLevel == "" && c.MinScore == nil && c.MaxScore == nil
}

// SignalAnalytics tracks aggregate engagement counters for a signal.
type SignalAnalytics struct {
	ViewCount       int64 `json:"viewCount" db:"view_count"`
	SubscriberCount int64 `json:"subscriberCount" db:"subscriber_count"`
	SightingCount   int64 `json:"sightingCount" db:"sighting_count"`
}

// Signal is a persistent, user-owned watch combining a geographic target and
// content conditions. Ownership is immutable after creation.
type Signal struct {
	ID             SignalID          `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	OwnerID        UserID            `json:"ownerId"`
	Target         Target            `json:"target"`
	Triggers       []TriggerKind     `json:"triggers"`
	Conditions     *SignalConditions `json:"conditions,omitempty"`
	Classification Classification    `json:"classification"`
	IsActive       bool              `json:"isActive"`
	Analytics      SignalAnalytics   `json:"analytics"`
	CreatedAt      int64             `json:"createdAt"` // Unix timestamp
	UpdatedAt      int64             `json:"updatedAt"` // Unix timestamp
}

// SignalFilter narrows signal listing queries.
type SignalFilter struct {
	OwnerID        UserID         `form:"ownerId"`
	Classification Classification `form:"classification"`
	TargetKind     TargetKind     `form:"targetKind"`
	ActiveOnly     bool           `form:"activeOnly"`
}
