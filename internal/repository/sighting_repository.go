package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// SightingRepository handles database operations for sightings
type SightingRepository struct {
	db *sql.DB
}

// NewSightingRepository creates a new sighting repository
func NewSightingRepository(db *sql.DB) *SightingRepository {
	return &SightingRepository{db: db}
}

const sightingColumns = `id, category_id, type_id, lat, lng, tags, importance,
	reporter_id, observed_at, score, hot_score, visibility`

// GetByID retrieves a sighting, or nil when it does not exist.
func (r *SightingRepository) GetByID(id domain.SightingID) (*domain.Sighting, error) {
	row := r.db.QueryRow("SELECT "+sightingColumns+" FROM sightings WHERE id = ?", string(id))

	s, err := scanSighting(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sighting: %w", err)
	}
	return s, nil
}

// Create inserts a new sighting.
func (r *SightingRepository) Create(s *domain.Sighting) error {
	tagsJSON, err := json.Marshal(s.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO sightings (`+sightingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(s.ID), string(s.CategoryID), string(s.TypeID),
		s.Location.Lat, s.Location.Lng, string(tagsJSON), string(s.Importance),
		string(s.ReporterID), s.ObservedAt, s.Score, s.HotScore, string(s.Visibility),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sighting: %w", err)
	}
	return nil
}

// UpdateDerivedScores persists the reaction-derived score, hot score, and
// visibility. These are the only mutable sighting fields.
func (r *SightingRepository) UpdateDerivedScores(id domain.SightingID, score int, hotScore float64, visibility domain.Visibility) error {
	_, err := r.db.Exec(
		"UPDATE sightings SET score = ?, hot_score = ?, visibility = ? WHERE id = ?",
		score, hotScore, string(visibility), string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update sighting scores: %w", err)
	}
	return nil
}

func scanSighting(row rowScanner) (*domain.Sighting, error) {
	var s domain.Sighting
	var tagsJSON sql.NullString

	err := row.Scan(
		&s.ID, &s.CategoryID, &s.TypeID, &s.Location.Lat, &s.Location.Lng,
		&tagsJSON, &s.Importance, &s.ReporterID, &s.ObservedAt,
		&s.Score, &s.HotScore, &s.Visibility,
	)
	if err != nil {
		return nil, err
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &s.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return &s, nil
}
