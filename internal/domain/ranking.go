package domain

// CategoryPreference is one of a user's top preferred categories with its
// interaction weight.
type CategoryPreference struct {
	CategoryID CategoryID `json:"categoryId"`
	Weight     int        `json:"weight"`
}

// RankingContext carries everything user-specific a ranking pass needs.
// UserLocation is present only when the user opted into location sharing.
type RankingContext struct {
	UserID               UserID
	UserLocation         *LatLng
	UserTier             MembershipTier
	CategoryPreferences  []CategoryPreference
	HiddenSignalIDs      map[SignalID]bool
	PinnedSignalIDs      map[SignalID]bool
	UnimportantSignalIDs map[SignalID]bool
	Personalization      bool
	LocationRanking      bool
}

// RankedSignal is a signal plus its per-request ranking attributes. It is
// computed per request and never persisted.
type RankedSignal struct {
	Signal
	RankScore     float64  `json:"rankScore"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	IsViralBoosted bool    `json:"isViralBoosted"`
	CategoryBoost float64  `json:"categoryBoost"`
	IsPinned      bool     `json:"isPinned"`
}
