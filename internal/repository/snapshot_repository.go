package repository

import (
	"database/sql"
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// SnapshotRepository handles database operations for daily activity
// snapshots
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetRecentForSignal returns up to days most recent snapshots for a signal,
// newest first.
func (r *SnapshotRepository) GetRecentForSignal(signalID domain.SignalID, days int) ([]domain.ActivitySnapshot, error) {
	rows, err := r.db.Query(`SELECT signal_id, snapshot_date, new_subscribers, new_sightings, view_count
		FROM signal_activity_snapshots
		WHERE signal_id = ?
		ORDER BY snapshot_date DESC
		LIMIT ?`,
		string(signalID), days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.ActivitySnapshot
	for rows.Next() {
		var s domain.ActivitySnapshot
		if err := rows.Scan(&s.SignalID, &s.SnapshotDate, &s.NewSubscribers, &s.NewSightings, &s.ViewCount); err != nil {
			return nil, fmt.Errorf("failed to scan activity snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// Upsert writes one day's activity row for a signal, accumulating counters
// when the row already exists.
func (r *SnapshotRepository) Upsert(s domain.ActivitySnapshot) error {
	_, err := r.db.Exec(`INSERT INTO signal_activity_snapshots
		(signal_id, snapshot_date, new_subscribers, new_sightings, view_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (signal_id, snapshot_date) DO UPDATE SET
			new_subscribers = new_subscribers + excluded.new_subscribers,
			new_sightings = new_sightings + excluded.new_sightings,
			view_count = view_count + excluded.view_count`,
		string(s.SignalID), s.SnapshotDate, s.NewSubscribers, s.NewSightings, s.ViewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert activity snapshot: %w", err)
	}
	return nil
}

// SubscriptionRepository handles database operations for signal
// subscriptions
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// IsSubscribed reports whether the user subscribes to the signal.
func (r *SubscriptionRepository) IsSubscribed(signalID domain.SignalID, userID domain.UserID) (bool, error) {
	var one int
	err := r.db.QueryRow(
		"SELECT 1 FROM signal_subscriptions WHERE signal_id = ? AND user_id = ?",
		string(signalID), string(userID),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return true, nil
}

// Subscribe records a subscription.
func (r *SubscriptionRepository) Subscribe(signalID domain.SignalID, userID domain.UserID, now int64) error {
	_, err := r.db.Exec(
		"INSERT INTO signal_subscriptions (signal_id, user_id, created_at) VALUES (?, ?, ?)",
		string(signalID), string(userID), now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// Unsubscribe removes a subscription.
func (r *SubscriptionRepository) Unsubscribe(signalID domain.SignalID, userID domain.UserID) error {
	_, err := r.db.Exec(
		"DELETE FROM signal_subscriptions WHERE signal_id = ? AND user_id = ?",
		string(signalID), string(userID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
