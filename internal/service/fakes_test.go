package service

import (
	"github.com/sightnet/signals-backend-go/internal/domain"
)

// In-memory fakes for the store contracts, used across the service tests.

type fakeSignals struct {
	items []domain.Signal
}

func (f *fakeSignals) List(filter domain.SignalFilter) ([]domain.Signal, error) {
	var out []domain.Signal
	for _, s := range f.items {
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		if filter.OwnerID != "" && s.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Classification != "" && s.Classification != filter.Classification {
			continue
		}
		if filter.TargetKind != "" && s.Target.Kind != filter.TargetKind {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSignals) ListActive() ([]domain.Signal, error) {
	return f.List(domain.SignalFilter{ActiveOnly: true})
}

func (f *fakeSignals) ListWithSubscriptionCounts(filter domain.SignalFilter) ([]domain.Signal, error) {
	return f.List(filter)
}

func (f *fakeSignals) GetByID(id domain.SignalID) (*domain.Signal, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSignals) Create(s *domain.Signal) error {
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSignals) Update(s *domain.Signal) error {
	for i := range f.items {
		if f.items[i].ID == s.ID {
			f.items[i] = *s
		}
	}
	return nil
}

func (f *fakeSignals) Delete(id domain.SignalID) error {
	out := f.items[:0]
	for _, s := range f.items {
		if s.ID != id {
			out = append(out, s)
		}
	}
	f.items = out
	return nil
}

func (f *fakeSignals) AdjustSubscriberCount(id domain.SignalID, delta int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Analytics.SubscriberCount += int64(delta)
		}
	}
	return nil
}

func (f *fakeSignals) IncrementSightingCount(id domain.SignalID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Analytics.SightingCount++
		}
	}
	return nil
}

func (f *fakeSignals) IncrementViewCount(id domain.SignalID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Analytics.ViewCount++
		}
	}
	return nil
}

type fakeGeofences struct {
	items map[domain.GeofenceID]*domain.Geofence
}

func (f *fakeGeofences) GetByID(id domain.GeofenceID) (*domain.Geofence, error) {
	return f.items[id], nil
}

func (f *fakeGeofences) Create(g *domain.Geofence) error {
	if f.items == nil {
		f.items = make(map[domain.GeofenceID]*domain.Geofence)
	}
	f.items[g.ID] = g
	return nil
}

func (f *fakeGeofences) ListByOwner(ownerID domain.UserID) ([]domain.Geofence, error) {
	var out []domain.Geofence
	for _, g := range f.items {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type fakeSightings struct {
	items map[domain.SightingID]*domain.Sighting
}

func (f *fakeSightings) GetByID(id domain.SightingID) (*domain.Sighting, error) {
	return f.items[id], nil
}

func (f *fakeSightings) Create(s *domain.Sighting) error {
	if f.items == nil {
		f.items = make(map[domain.SightingID]*domain.Sighting)
	}
	copied := *s
	f.items[s.ID] = &copied
	return nil
}

func (f *fakeSightings) UpdateDerivedScores(id domain.SightingID, score int, hotScore float64, visibility domain.Visibility) error {
	if s, ok := f.items[id]; ok {
		s.Score = score
		s.HotScore = hotScore
		s.Visibility = visibility
	}
	return nil
}

type fakeReputations struct {
	items map[domain.UserID]*domain.Reputation
}

func (f *fakeReputations) GetByUserID(userID domain.UserID) (*domain.Reputation, error) {
	return f.items[userID], nil
}

func (f *fakeReputations) AddPoints(userID domain.UserID, delta int, now int64) error {
	if f.items == nil {
		f.items = make(map[domain.UserID]*domain.Reputation)
	}
	rep, ok := f.items[userID]
	if !ok {
		rep = &domain.Reputation{UserID: userID}
		f.items[userID] = rep
	}
	rep.Score += delta
	rep.UpdatedAt = now
	return nil
}

type fakeUsers struct {
	items map[domain.UserID]*domain.User
}

func (f *fakeUsers) GetByID(id domain.UserID) (*domain.User, error) {
	return f.items[id], nil
}

func (f *fakeUsers) Create(u *domain.User) error {
	if f.items == nil {
		f.items = make(map[domain.UserID]*domain.User)
	}
	f.items[u.ID] = u
	return nil
}

type fakePrivacy struct {
	items map[domain.UserID]domain.PrivacySettings
}

func (f *fakePrivacy) GetByUserID(userID domain.UserID) (domain.PrivacySettings, error) {
	if s, ok := f.items[userID]; ok {
		return s, nil
	}
	return domain.PrivacySettings{UserID: userID}, nil
}

func (f *fakePrivacy) Upsert(s domain.PrivacySettings) error {
	if f.items == nil {
		f.items = make(map[domain.UserID]domain.PrivacySettings)
	}
	f.items[s.UserID] = s
	return nil
}

type fakeInteractions struct {
	top           []domain.CategoryPreference
	clicks        []domain.CategoryID
	subscriptions []domain.CategoryID
}

func (f *fakeInteractions) GetTopCategoriesForUser(userID domain.UserID, n int) ([]domain.CategoryPreference, error) {
	if n < len(f.top) {
		return f.top[:n], nil
	}
	return f.top, nil
}

func (f *fakeInteractions) RecordClick(userID domain.UserID, categoryID domain.CategoryID) error {
	f.clicks = append(f.clicks, categoryID)
	return nil
}

func (f *fakeInteractions) RecordSubscription(userID domain.UserID, categoryID domain.CategoryID) error {
	f.subscriptions = append(f.subscriptions, categoryID)
	return nil
}

type fakePreferences struct {
	hidden      map[domain.SignalID]bool
	pinned      map[domain.SignalID]bool
	unimportant map[domain.SignalID]bool
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{
		hidden:      make(map[domain.SignalID]bool),
		pinned:      make(map[domain.SignalID]bool),
		unimportant: make(map[domain.SignalID]bool),
	}
}

func (f *fakePreferences) GetHiddenSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return f.hidden, nil
}

func (f *fakePreferences) GetPinnedSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return f.pinned, nil
}

func (f *fakePreferences) GetUnimportantSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return f.unimportant, nil
}

func (f *fakePreferences) SetHidden(userID domain.UserID, signalID domain.SignalID, hidden bool) error {
	f.hidden[signalID] = hidden
	return nil
}

func (f *fakePreferences) SetPinned(userID domain.UserID, signalID domain.SignalID, pinned bool) error {
	f.pinned[signalID] = pinned
	return nil
}

func (f *fakePreferences) SetUnimportant(userID domain.UserID, signalID domain.SignalID, unimportant bool) error {
	f.unimportant[signalID] = unimportant
	return nil
}

type fakeSnapshots struct {
	items map[domain.SignalID][]domain.ActivitySnapshot
}

func (f *fakeSnapshots) GetRecentForSignal(signalID domain.SignalID, days int) ([]domain.ActivitySnapshot, error) {
	snaps := f.items[signalID]
	if len(snaps) > days {
		snaps = snaps[:days]
	}
	return snaps, nil
}

func (f *fakeSnapshots) Upsert(s domain.ActivitySnapshot) error {
	if f.items == nil {
		f.items = make(map[domain.SignalID][]domain.ActivitySnapshot)
	}
	f.items[s.SignalID] = append(f.items[s.SignalID], s)
	return nil
}

type fakeSubscriptions struct {
	subscribed map[string]bool
}

func newFakeSubscriptions() *fakeSubscriptions {
	return &fakeSubscriptions{subscribed: make(map[string]bool)}
}

func (f *fakeSubscriptions) IsSubscribed(signalID domain.SignalID, userID domain.UserID) (bool, error) {
	return f.subscribed[domain.PreferenceKey(userID, signalID)], nil
}

func (f *fakeSubscriptions) Subscribe(signalID domain.SignalID, userID domain.UserID, now int64) error {
	f.subscribed[domain.PreferenceKey(userID, signalID)] = true
	return nil
}

func (f *fakeSubscriptions) Unsubscribe(signalID domain.SignalID, userID domain.UserID) error {
	delete(f.subscribed, domain.PreferenceKey(userID, signalID))
	return nil
}

type fakeReactions struct {
	byUser map[domain.SightingID]map[domain.UserID]domain.ReactionKind
}

func newFakeReactions() *fakeReactions {
	return &fakeReactions{byUser: make(map[domain.SightingID]map[domain.UserID]domain.ReactionKind)}
}

func (f *fakeReactions) Upsert(sightingID domain.SightingID, userID domain.UserID, kind domain.ReactionKind) error {
	if f.byUser[sightingID] == nil {
		f.byUser[sightingID] = make(map[domain.UserID]domain.ReactionKind)
	}
	f.byUser[sightingID][userID] = kind
	return nil
}

func (f *fakeReactions) Remove(sightingID domain.SightingID, userID domain.UserID) error {
	delete(f.byUser[sightingID], userID)
	return nil
}

func (f *fakeReactions) CountsForSighting(sightingID domain.SightingID) (domain.ReactionCounts, error) {
	var counts domain.ReactionCounts
	for _, kind := range f.byUser[sightingID] {
		switch kind {
		case domain.ReactionUpvote:
			counts.Upvotes++
		case domain.ReactionDownvote:
			counts.Downvotes++
		case domain.ReactionConfirm:
			counts.Confirmations++
		case domain.ReactionDispute:
			counts.Disputes++
		case domain.ReactionSpamReport:
			counts.SpamReports++
		}
	}
	return counts, nil
}
