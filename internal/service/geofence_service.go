package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/membership"
	"github.com/sightnet/signals-backend-go/internal/spatial"
)

// GeofenceInput carries the caller-supplied fields for creating a geofence.
type GeofenceInput struct {
	Name       string                    `json:"name"`
	Points     []domain.LatLng           `json:"points"`
	Visibility domain.GeofenceVisibility `json:"visibility"`
}

// GeofenceService manages the reusable named areas that signals target.
type GeofenceService struct {
	geofences GeofenceAdminStore
	users     UserStore
	log       zerolog.Logger
}

// NewGeofenceService creates a new geofence service
func NewGeofenceService(geofences GeofenceAdminStore, users UserStore, log zerolog.Logger) *GeofenceService {
	return &GeofenceService{
		geofences: geofences,
		users:     users,
		log:       log.With().Str("component", "geofence").Logger(),
	}
}

// Create validates and stores a new geofence. The owner's membership tier
// bounds the polygon's area and vertex count, same as for inline polygon
// targets.
func (s *GeofenceService) Create(ownerID domain.UserID, input GeofenceInput) (*domain.Geofence, error) {
	if input.Name == "" {
		return nil, domain.NewFieldError(domain.ErrGeofenceNameRequired, "geofence name is required", "name")
	}

	polygon := domain.Polygon{Points: input.Points}
	if !polygon.IsValid() {
		return nil, domain.NewFieldError(domain.ErrInvalidPolygon, "a polygon needs at least 3 points", "points")
	}

	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if owner == nil {
		return nil, domain.NewError(domain.ErrUserNotFound, "user does not exist")
	}

	if err := membership.ValidateGeofenceArea(spatial.PolygonAreaKm2(input.Points), owner.Tier); err != nil {
		return nil, err
	}
	if err := membership.ValidatePolygonPoints(len(input.Points), owner.Tier); err != nil {
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.GeofencePrivate
	}

	g := &domain.Geofence{
		ID:         domain.GeofenceID(uuid.NewString()),
		Name:       input.Name,
		Polygon:    polygon,
		Visibility: visibility,
		OwnerID:    ownerID,
		CreatedAt:  time.Now().Unix(),
	}
	if err := s.geofences.Create(g); err != nil {
		return nil, fmt.Errorf("failed to store geofence: %w", err)
	}

	s.log.Info().Str("geofence_id", string(g.ID)).Str("owner_id", string(ownerID)).Msg("geofence created")
	return g, nil
}

// Get returns one geofence by id.
func (s *GeofenceService) Get(id domain.GeofenceID) (*domain.Geofence, error) {
	g, err := s.geofences.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load geofence: %w", err)
	}
	if g == nil {
		return nil, domain.NewError(domain.ErrGeofenceNotFound, "geofence does not exist")
	}
	return g, nil
}

// ListOwn returns the geofences owned by a user.
func (s *GeofenceService) ListOwn(ownerID domain.UserID) ([]domain.Geofence, error) {
	return s.geofences.ListByOwner(ownerID)
}
