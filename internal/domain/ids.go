package domain

import "fmt"

// Distinct id types prevent a user id from being passed where a signal id is
// expected. All ids are opaque strings (UUIDs for entities created here).
type (
	SignalID   string
	UserID     string
	GeofenceID string
	SightingID string
	CategoryID string
	TypeID     string
)

func (id SignalID) String() string   { return string(id) }
func (id UserID) String() string     { return string(id) }
func (id GeofenceID) String() string { return string(id) }
func (id SightingID) String() string { return string(id) }
func (id CategoryID) String() string { return string(id) }
func (id TypeID) String() string     { return string(id) }

// PreferenceKey is the composite identity of a per-user signal preference
// record, formatted as "{userId}:{signalId}".
func PreferenceKey(userID UserID, signalID SignalID) string {
	return fmt.Sprintf("%s:%s", userID, signalID)
}
