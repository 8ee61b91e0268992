package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// ReactionRepository handles database operations for sighting reactions
type ReactionRepository struct {
	db *sql.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Upsert records a user's reaction to a sighting. A user has at most one
// reaction per sighting; reacting again replaces the previous kind.
func (r *ReactionRepository) Upsert(sightingID domain.SightingID, userID domain.UserID, kind domain.ReactionKind) error {
	_, err := r.db.Exec(`INSERT INTO sighting_reactions (sighting_id, user_id, kind, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (sighting_id, user_id) DO UPDATE SET kind = excluded.kind`,
		string(sightingID), string(userID), string(kind), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reaction: %w", err)
	}
	return nil
}

// Remove deletes a user's reaction to a sighting.
func (r *ReactionRepository) Remove(sightingID domain.SightingID, userID domain.UserID) error {
	_, err := r.db.Exec(
		"DELETE FROM sighting_reactions WHERE sighting_id = ? AND user_id = ?",
		string(sightingID), string(userID),
	)
	if err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

// CountsForSighting tallies the reactions currently recorded for a sighting.
func (r *ReactionRepository) CountsForSighting(sightingID domain.SightingID) (domain.ReactionCounts, error) {
	rows, err := r.db.Query(
		"SELECT kind, COUNT(*) FROM sighting_reactions WHERE sighting_id = ? GROUP BY kind",
		string(sightingID),
	)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("failed to count reactions: %w", err)
	}
	defer rows.Close()

	var counts domain.ReactionCounts
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return domain.ReactionCounts{}, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		switch domain.ReactionKind(kind) {
		case domain.ReactionUpvote:
			counts.Upvotes = n
		case domain.ReactionDownvote:
			counts.Downvotes = n
		case domain.ReactionConfirm:
			counts.Confirmations = n
		case domain.ReactionDispute:
			counts.Disputes = n
		case domain.ReactionSpamReport:
			counts.SpamReports = n
		}
	}
	return counts, rows.Err()
}
