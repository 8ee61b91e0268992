package repository

import (
	"database/sql"
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user, or nil when it does not exist.
func (r *UserRepository) GetByID(id domain.UserID) (*domain.User, error) {
	row := r.db.QueryRow(
		"SELECT id, display_name, tier, created_at FROM users WHERE id = ?",
		string(id),
	)

	var u domain.User
	err := row.Scan(&u.ID, &u.DisplayName, &u.Tier, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(u *domain.User) error {
	_, err := r.db.Exec(
		"INSERT INTO users (id, display_name, tier, created_at) VALUES (?, ?, ?, ?)",
		string(u.ID), u.DisplayName, string(u.Tier), u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// ReputationRepository handles database operations for reputation records
type ReputationRepository struct {
	db *sql.DB
}

// NewReputationRepository creates a new reputation repository
func NewReputationRepository(db *sql.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

// GetByUserID retrieves a user's reputation record, or nil when the user has
// none yet.
func (r *ReputationRepository) GetByUserID(userID domain.UserID) (*domain.Reputation, error) {
	row := r.db.QueryRow(
		"SELECT user_id, score, manual_tier, updated_at FROM reputations WHERE user_id = ?",
		string(userID),
	)

	var rep domain.Reputation
	var manualTier sql.NullString
	err := row.Scan(&rep.UserID, &rep.Score, &manualTier, &rep.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}
	rep.ManualTier = domain.TrustTier(manualTier.String)
	return &rep, nil
}

// AddPoints shifts a user's reputation score, creating the record when
// missing.
func (r *ReputationRepository) AddPoints(userID domain.UserID, delta int, now int64) error {
	_, err := r.db.Exec(`INSERT INTO reputations (user_id, score, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET score = score + excluded.score, updated_at = excluded.updated_at`,
		string(userID), delta, now,
	)
	if err != nil {
		return fmt.Errorf("failed to add reputation points: %w", err)
	}
	return nil
}
