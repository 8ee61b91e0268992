package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// GeofenceRepository handles database operations for geofences
type GeofenceRepository struct {
	db *sql.DB
}

// NewGeofenceRepository creates a new geofence repository
func NewGeofenceRepository(db *sql.DB) *GeofenceRepository {
	return &GeofenceRepository{db: db}
}

// GetByID retrieves a geofence, or nil when it does not exist.
func (r *GeofenceRepository) GetByID(id domain.GeofenceID) (*domain.Geofence, error) {
	row := r.db.QueryRow(
		"SELECT id, name, polygon, visibility, owner_id, created_at FROM geofences WHERE id = ?",
		string(id),
	)

	var g domain.Geofence
	var polygonJSON string
	err := row.Scan(&g.ID, &g.Name, &polygonJSON, &g.Visibility, &g.OwnerID, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get geofence: %w", err)
	}

	if err := json.Unmarshal([]byte(polygonJSON), &g.Polygon); err != nil {
		return nil, fmt.Errorf("failed to decode geofence polygon: %w", err)
	}
	return &g, nil
}

// Create inserts a new geofence.
func (r *GeofenceRepository) Create(g *domain.Geofence) error {
	polygonJSON, err := json.Marshal(g.Polygon)
	if err != nil {
		return fmt.Errorf("failed to encode geofence polygon: %w", err)
	}

	_, err = r.db.Exec(
		"INSERT INTO geofences (id, name, polygon, visibility, owner_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		string(g.ID), g.Name, string(polygonJSON), string(g.Visibility), string(g.OwnerID), g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert geofence: %w", err)
	}
	return nil
}

// ListByOwner retrieves all geofences owned by a user.
func (r *GeofenceRepository) ListByOwner(ownerID domain.UserID) ([]domain.Geofence, error) {
	rows, err := r.db.Query(
		"SELECT id, name, polygon, visibility, owner_id, created_at FROM geofences WHERE owner_id = ? ORDER BY created_at DESC",
		string(ownerID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query geofences: %w", err)
	}
	defer rows.Close()

	var geofences []domain.Geofence
	for rows.Next() {
		var g domain.Geofence
		var polygonJSON string
		if err := rows.Scan(&g.ID, &g.Name, &polygonJSON, &g.Visibility, &g.OwnerID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		if err := json.Unmarshal([]byte(polygonJSON), &g.Polygon); err != nil {
			return nil, fmt.Errorf("failed to decode geofence polygon: %w", err)
		}
		geofences = append(geofences, g)
	}
	return geofences, rows.Err()
}
