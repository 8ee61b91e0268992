package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// SignalRepository handles database operations for signals
type SignalRepository struct {
	db *sql.DB
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *sql.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

const signalColumns = `id, name, description, owner_id, target_kind, target_geofence_id,
	target_polygon, triggers, conditions, classification, is_active,
	view_count, subscriber_count, sighting_count, created_at, updated_at`

// List retrieves signals matching the filter.
func (r *SignalRepository) List(filter domain.SignalFilter) ([]domain.Signal, error) {
	query := "SELECT " + signalColumns + " FROM signals"

	var conditions []string
	var args []interface{}

	if filter.OwnerID != "" {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, string(filter.OwnerID))
	}
	if filter.Classification != "" {
		conditions = append(conditions, "classification = ?")
		args = append(args, string(filter.Classification))
	}
	if filter.TargetKind != "" {
		conditions = append(conditions, "target_kind = ?")
		args = append(args, string(filter.TargetKind))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = 1")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// ListActive retrieves all currently active signals.
func (r *SignalRepository) ListActive() ([]domain.Signal, error) {
	return r.List(domain.SignalFilter{ActiveOnly: true})
}

// GetByID retrieves a single signal, or nil when it does not exist.
func (r *SignalRepository) GetByID(id domain.SignalID) (*domain.Signal, error) {
	row := r.db.QueryRow("SELECT "+signalColumns+" FROM signals WHERE id = ?", string(id))

	s, err := scanSignal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signal: %w", err)
	}
	return s, nil
}

// Create inserts a new signal.
func (r *SignalRepository) Create(s *domain.Signal) error {
	geofenceID, polygonJSON, err := encodeTarget(s.Target)
	if err != nil {
		return err
	}
	triggersJSON, err := json.Marshal(s.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}
	conditionsJSON, err := encodeConditions(s.Conditions)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO signals (`+signalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(s.ID), s.Name, s.Description, string(s.OwnerID),
		string(s.Target.Kind), geofenceID, polygonJSON,
		string(triggersJSON), conditionsJSON, string(s.Classification),
		boolToInt(s.IsActive),
		s.Analytics.ViewCount, s.Analytics.SubscriberCount, s.Analytics.SightingCount,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert signal: %w", err)
	}
	return nil
}

// Update rewrites a signal's mutable fields. Ownership and creation time are
// never touched.
func (r *SignalRepository) Update(s *domain.Signal) error {
	geofenceID, polygonJSON, err := encodeTarget(s.Target)
	if err != nil {
		return err
	}
	triggersJSON, err := json.Marshal(s.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}
	conditionsJSON, err := encodeConditions(s.Conditions)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`UPDATE signals SET
		name = ?, description = ?, target_kind = ?, target_geofence_id = ?,
		target_polygon = ?, triggers = ?, conditions = ?, classification = ?,
		is_active = ?, updated_at = ?
		WHERE id = ?`,
		s.Name, s.Description, string(s.Target.Kind), geofenceID, polygonJSON,
		string(triggersJSON), conditionsJSON, string(s.Classification),
		boolToInt(s.IsActive), s.UpdatedAt, string(s.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update signal: %w", err)
	}
	return nil
}

// Delete removes a signal.
func (r *SignalRepository) Delete(id domain.SignalID) error {
	if _, err := r.db.Exec("DELETE FROM signals WHERE id = ?", string(id)); err != nil {
		return fmt.Errorf("failed to delete signal: %w", err)
	}
	return nil
}

// AdjustSubscriberCount shifts the cached subscriber counter by delta.
func (r *SignalRepository) AdjustSubscriberCount(id domain.SignalID, delta int) error {
	_, err := r.db.Exec(
		"UPDATE signals SET subscriber_count = MAX(0, subscriber_count + ?) WHERE id = ?",
		delta, string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to adjust subscriber count: %w", err)
	}
	return nil
}

// IncrementSightingCount bumps the matched-sighting counter.
func (r *SignalRepository) IncrementSightingCount(id domain.SignalID) error {
	_, err := r.db.Exec(
		"UPDATE signals SET sighting_count = sighting_count + 1 WHERE id = ?",
		string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to increment sighting count: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the view counter.
func (r *SignalRepository) IncrementViewCount(id domain.SignalID) error {
	_, err := r.db.Exec(
		"UPDATE signals SET view_count = view_count + 1 WHERE id = ?",
		string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// ListWithSubscriptionCounts retrieves signals matching the filter with the
// subscriber counter freshly recomputed from the subscriptions table.
func (r *SignalRepository) ListWithSubscriptionCounts(filter domain.SignalFilter) ([]domain.Signal, error) {
	signals, err := r.List(filter)
	if err != nil {
		return nil, err
	}

	for i := range signals {
		var count int64
		err := r.db.QueryRow(
			"SELECT COUNT(*) FROM signal_subscriptions WHERE signal_id = ?",
			string(signals[i].ID),
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count subscriptions: %w", err)
		}
		signals[i].Analytics.SubscriberCount = count
	}
	return signals, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSignal(row rowScanner) (*domain.Signal, error) {
	var s domain.Signal
	var description, geofenceID, polygonJSON, conditionsJSON sql.NullString
	var triggersJSON string
	var isActive int

	err := row.Scan(
		&s.ID, &s.Name, &description, &s.OwnerID, &s.Target.Kind, &geofenceID,
		&polygonJSON, &triggersJSON, &conditionsJSON, &s.Classification, &isActive,
		&s.Analytics.ViewCount, &s.Analytics.SubscriberCount, &s.Analytics.SightingCount,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Description = description.String
	s.IsActive = isActive != 0
	s.Target.GeofenceID = domain.GeofenceID(geofenceID.String)

	if polygonJSON.Valid && polygonJSON.String != "" {
		var poly domain.Polygon
		if err := json.Unmarshal([]byte(polygonJSON.String), &poly); err != nil {
			return nil, fmt.Errorf("failed to decode polygon: %w", err)
		}
		s.Target.Polygon = &poly
	}
	if err := json.Unmarshal([]byte(triggersJSON), &s.Triggers); err != nil {
		return nil, fmt.Errorf("failed to decode triggers: %w", err)
	}
	if conditionsJSON.Valid && conditionsJSON.String != "" {
		var cond domain.SignalConditions
		if err := json.Unmarshal([]byte(conditionsJSON.String), &cond); err != nil {
			return nil, fmt.Errorf("failed to decode conditions: %w", err)
		}
		s.Conditions = &cond
	}

	return &s, nil
}

func scanSignals(rows *sql.Rows) ([]domain.Signal, error) {
	var signals []domain.Signal
	for rows.Next() {
		s, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		signals = append(signals, *s)
	}
	return signals, rows.Err()
}

func encodeTarget(t domain.Target) (geofenceID string, polygonJSON sql.NullString, err error) {
	geofenceID = string(t.GeofenceID)
	if t.Polygon != nil {
		data, mErr := json.Marshal(t.Polygon)
		if mErr != nil {
			return "", sql.NullString{}, fmt.Errorf("failed to encode polygon: %w", mErr)
		}
		polygonJSON = sql.NullString{String: string(data), Valid: true}
	}
	return geofenceID, polygonJSON, nil
}

func encodeConditions(c *domain.SignalConditions) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode conditions: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
