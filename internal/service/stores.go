package service

import "github.com/sightnet/signals-backend-go/internal/domain"

// Store contracts consumed by the services. The sqlite repositories satisfy
// them in production; tests use in-memory fakes.

// SignalStore persists signals.
type SignalStore interface {
	List(filter domain.SignalFilter) ([]domain.Signal, error)
	ListActive() ([]domain.Signal, error)
	ListWithSubscriptionCounts(filter domain.SignalFilter) ([]domain.Signal, error)
	GetByID(id domain.SignalID) (*domain.Signal, error)
	Create(s *domain.Signal) error
	Update(s *domain.Signal) error
	Delete(id domain.SignalID) error
	AdjustSubscriberCount(id domain.SignalID, delta int) error
	IncrementSightingCount(id domain.SignalID) error
	IncrementViewCount(id domain.SignalID) error
}

// GeofenceStore resolves geofences by id.
type GeofenceStore interface {
	GetByID(id domain.GeofenceID) (*domain.Geofence, error)
}

// SightingStore persists sightings.
type SightingStore interface {
	GetByID(id domain.SightingID) (*domain.Sighting, error)
	Create(s *domain.Sighting) error
	UpdateDerivedScores(id domain.SightingID, score int, hotScore float64, visibility domain.Visibility) error
}

// ReputationStore reads reputation records.
type ReputationStore interface {
	GetByUserID(userID domain.UserID) (*domain.Reputation, error)
}

// UserStore reads user accounts.
type UserStore interface {
	GetByID(id domain.UserID) (*domain.User, error)
}

// PrivacyStore reads per-user privacy settings.
type PrivacyStore interface {
	GetByUserID(userID domain.UserID) (domain.PrivacySettings, error)
}

// InteractionStore tracks per-category engagement.
type InteractionStore interface {
	GetTopCategoriesForUser(userID domain.UserID, n int) ([]domain.CategoryPreference, error)
	RecordClick(userID domain.UserID, categoryID domain.CategoryID) error
	RecordSubscription(userID domain.UserID, categoryID domain.CategoryID) error
}

// PreferenceStore tracks per-user signal flags.
type PreferenceStore interface {
	GetHiddenSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error)
	GetPinnedSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error)
	GetUnimportantSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error)
	SetHidden(userID domain.UserID, signalID domain.SignalID, hidden bool) error
	SetPinned(userID domain.UserID, signalID domain.SignalID, pinned bool) error
	SetUnimportant(userID domain.UserID, signalID domain.SignalID, unimportant bool) error
}

// SnapshotStore reads and appends daily activity snapshots.
type SnapshotStore interface {
	GetRecentForSignal(signalID domain.SignalID, days int) ([]domain.ActivitySnapshot, error)
	Upsert(s domain.ActivitySnapshot) error
}

// SubscriptionStore tracks signal subscriptions.
type SubscriptionStore interface {
	IsSubscribed(signalID domain.SignalID, userID domain.UserID) (bool, error)
	Subscribe(signalID domain.SignalID, userID domain.UserID, now int64) error
	Unsubscribe(signalID domain.SignalID, userID domain.UserID) error
}

// ReactionStore records sighting reactions.
type ReactionStore interface {
	Upsert(sightingID domain.SightingID, userID domain.UserID, kind domain.ReactionKind) error
	Remove(sightingID domain.SightingID, userID domain.UserID) error
	CountsForSighting(sightingID domain.SightingID) (domain.ReactionCounts, error)
}

// GeofenceAdminStore extends GeofenceStore with the write side used by
// geofence management.
type GeofenceAdminStore interface {
	GeofenceStore
	Create(g *domain.Geofence) error
	ListByOwner(ownerID domain.UserID) ([]domain.Geofence, error)
}

// UserAccountStore extends UserStore with account creation.
type UserAccountStore interface {
	UserStore
	Create(u *domain.User) error
}

// PrivacyAdminStore extends PrivacyStore with the write side of privacy
// settings.
type PrivacyAdminStore interface {
	PrivacyStore
	Upsert(s domain.PrivacySettings) error
}

// ReputationAdminStore extends ReputationStore with score adjustment.
type ReputationAdminStore interface {
	ReputationStore
	AddPoints(userID domain.UserID, delta int, now int64) error
}
