package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   *domain.Error `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response with a plain message
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// DomainError sends a domain failure, mapping its stable code to an HTTP
// status and keeping the code/message/field payload intact.
func DomainError(c *gin.Context, de *domain.Error) {
	status := statusFor(de.Code)
	c.JSON(status, Response{
		Code:    status,
		Message: de.Message,
		Error:   de,
	})
}

// FromError dispatches any service error: domain failures keep their payload
// and status, everything else is an internal error.
func FromError(c *gin.Context, err error) {
	if de, ok := domain.AsDomainError(err); ok {
		DomainError(c, de)
		return
	}
	Error(c, http.StatusInternalServerError, "internal error")
}

func statusFor(code string) int {
	switch code {
	case domain.ErrSignalNotFound, domain.ErrUserNotFound, domain.ErrSightingNotFound,
		domain.ErrGeofenceNotFound:
		return http.StatusNotFound
	case domain.ErrSignalUnauthorized, domain.ErrUserForbidden:
		return http.StatusForbidden
	case domain.ErrAlreadySubscribed, domain.ErrNotSubscribed, domain.ErrSignalNotActive:
		return http.StatusConflict
	case domain.ErrGeofenceAreaExceeded, domain.ErrPolygonPointsExceeded,
		domain.ErrSightingTypesExceeded, domain.ErrGlobalNotAllowed:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}
