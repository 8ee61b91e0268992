package domain

import "errors"

// Stable error codes returned across the engine boundary. Handlers map these
// to HTTP statuses; the codes themselves never change.
const (
	ErrSignalNotFound        = "signal.not_found"
	ErrSignalUnauthorized    = "signal.unauthorized"
	ErrSignalNotActive       = "signal.not_active"
	ErrAlreadySubscribed     = "signal.already_subscribed"
	ErrNotSubscribed         = "signal.not_subscribed"
	ErrNameRequired          = "signal.name_required"
	ErrNameTooLong           = "signal.name_too_long"
	ErrDescriptionTooLong    = "signal.description_too_long"
	ErrOwnerRequired         = "signal.owner_required"
	ErrTriggersRequired      = "signal.triggers_required"
	ErrDuplicateTriggers     = "signal.duplicate_triggers"
	ErrInvalidScoreRange     = "signal.invalid_score_range"
	ErrGeofenceRequired      = "signal.geofence_required"
	ErrInvalidPolygon        = "geo.invalid_polygon"
	ErrGeofenceAreaExceeded  = "membership.geofence_area_exceeded"
	ErrPolygonPointsExceeded = "membership.polygon_points_exceeded"
	ErrSightingTypesExceeded = "membership.sighting_types_exceeded"
	ErrGlobalNotAllowed      = "membership.global_signal_not_allowed"
	ErrUserNotFound          = "user.not_found"
	ErrSightingNotFound      = "sighting.not_found"
	ErrGeofenceNotFound      = "geofence.not_found"
	ErrGeofenceNameRequired  = "geofence.name_required"
	ErrUserForbidden         = "user.forbidden"
)

// Error is a typed domain failure carrying a stable code. Validation and
// quota failures are recoverable; missing-entity failures are terminal for
// the request. Unexpected repository errors are wrapped, not converted.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// NewError builds a domain error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewFieldError builds a domain error attached to a specific input field.
func NewFieldError(code, message, field string) *Error {
	return &Error{Code: code, Message: message, Field: field}
}

// AsDomainError unwraps err to a *Error if one is in the chain.
func AsDomainError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code string) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}
