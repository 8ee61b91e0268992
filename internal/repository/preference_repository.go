package repository

import (
	"database/sql"
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// PrivacyRepository handles database operations for privacy settings
type PrivacyRepository struct {
	db *sql.DB
}

// NewPrivacyRepository creates a new privacy repository
func NewPrivacyRepository(db *sql.DB) *PrivacyRepository {
	return &PrivacyRepository{db: db}
}

// GetByUserID retrieves a user's privacy settings. When no record exists,
// both flags are returned false (privacy by default).
func (r *PrivacyRepository) GetByUserID(userID domain.UserID) (domain.PrivacySettings, error) {
	row := r.db.QueryRow(
		"SELECT enable_personalization, enable_location_sharing FROM user_privacy_settings WHERE user_id = ?",
		string(userID),
	)

	settings := domain.PrivacySettings{UserID: userID}
	var personalization, locationSharing int
	err := row.Scan(&personalization, &locationSharing)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to get privacy settings: %w", err)
	}

	settings.EnablePersonalization = personalization != 0
	settings.EnableLocationSharing = locationSharing != 0
	return settings, nil
}

// Upsert stores a user's privacy settings.
func (r *PrivacyRepository) Upsert(s domain.PrivacySettings) error {
	_, err := r.db.Exec(`INSERT INTO user_privacy_settings (user_id, enable_personalization, enable_location_sharing)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			enable_personalization = excluded.enable_personalization,
			enable_location_sharing = excluded.enable_location_sharing`,
		string(s.UserID), boolToInt(s.EnablePersonalization), boolToInt(s.EnableLocationSharing),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert privacy settings: %w", err)
	}
	return nil
}

// PreferenceRepository handles database operations for per-user signal
// preferences (hidden / pinned / unimportant flags)
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetHiddenSignalIDs returns the ids of signals the user has hidden.
func (r *PreferenceRepository) GetHiddenSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return r.signalIDsWhere(userID, "is_hidden")
}

// GetPinnedSignalIDs returns the ids of signals the user has pinned.
func (r *PreferenceRepository) GetPinnedSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return r.signalIDsWhere(userID, "is_pinned")
}

// GetUnimportantSignalIDs returns the ids of signals the user marked
// unimportant.
func (r *PreferenceRepository) GetUnimportantSignalIDs(userID domain.UserID) (map[domain.SignalID]bool, error) {
	return r.signalIDsWhere(userID, "is_unimportant")
}

func (r *PreferenceRepository) signalIDsWhere(userID domain.UserID, flagColumn string) (map[domain.SignalID]bool, error) {
	// flagColumn is one of three fixed column names, never user input.
	rows, err := r.db.Query(
		"SELECT signal_id FROM user_signal_preferences WHERE user_id = ? AND "+flagColumn+" = 1",
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query signal preferences: %w", err)
	}
	defer rows.Close()

	ids := make(map[domain.SignalID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan preference signal id: %w", err)
		}
		ids[domain.SignalID(id)] = true
	}
	return ids, rows.Err()
}

// SetHidden toggles the hidden flag for a user's signal preference record.
func (r *PreferenceRepository) SetHidden(userID domain.UserID, signalID domain.SignalID, hidden bool) error {
	return r.setFlag(userID, signalID, "is_hidden", hidden)
}

// SetPinned toggles the pinned flag.
func (r *PreferenceRepository) SetPinned(userID domain.UserID, signalID domain.SignalID, pinned bool) error {
	return r.setFlag(userID, signalID, "is_pinned", pinned)
}

// SetUnimportant toggles the unimportant flag.
func (r *PreferenceRepository) SetUnimportant(userID domain.UserID, signalID domain.SignalID, unimportant bool) error {
	return r.setFlag(userID, signalID, "is_unimportant", unimportant)
}

func (r *PreferenceRepository) setFlag(userID domain.UserID, signalID domain.SignalID, flagColumn string, value bool) error {
	key := domain.PreferenceKey(userID, signalID)
	_, err := r.db.Exec(`INSERT INTO user_signal_preferences (id, user_id, signal_id, `+flagColumn+`)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET `+flagColumn+` = excluded.`+flagColumn,
		key, string(userID), string(signalID), boolToInt(value),
	)
	if err != nil {
		return fmt.Errorf("failed to set signal preference: %w", err)
	}
	return nil
}

// InteractionRepository handles database operations for category interactions
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// GetTopCategoriesForUser returns the user's n most-interacted categories,
// weighted by clickCount + 2*subscriptionCount.
func (r *InteractionRepository) GetTopCategoriesForUser(userID domain.UserID, n int) ([]domain.CategoryPreference, error) {
	rows, err := r.db.Query(`SELECT category_id, click_count + subscription_count * 2 AS weight
		FROM user_category_interactions
		WHERE user_id = ?
		ORDER BY weight DESC
		LIMIT ?`,
		string(userID), n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category interactions: %w", err)
	}
	defer rows.Close()

	var prefs []domain.CategoryPreference
	for rows.Next() {
		var p domain.CategoryPreference
		if err := rows.Scan(&p.CategoryID, &p.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan category preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// RecordClick bumps a user's click counter for a category.
func (r *InteractionRepository) RecordClick(userID domain.UserID, categoryID domain.CategoryID) error {
	return r.bump(userID, categoryID, "click_count")
}

// RecordSubscription bumps a user's subscription counter for a category.
func (r *InteractionRepository) RecordSubscription(userID domain.UserID, categoryID domain.CategoryID) error {
	return r.bump(userID, categoryID, "subscription_count")
}

func (r *InteractionRepository) bump(userID domain.UserID, categoryID domain.CategoryID, column string) error {
	_, err := r.db.Exec(`INSERT INTO user_category_interactions (user_id, category_id, `+column+`)
		VALUES (?, ?, 1)
		ON CONFLICT (user_id, category_id) DO UPDATE SET `+column+` = `+column+` + 1`,
		string(userID), string(categoryID),
	)
	if err != nil {
		return fmt.Errorf("failed to record category interaction: %w", err)
	}
	return nil
}
