package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// GeofenceHandler handles HTTP requests for geofences
type GeofenceHandler struct {
	geofences *service.GeofenceService
}

// NewGeofenceHandler creates a new geofence handler
func NewGeofenceHandler(geofences *service.GeofenceService) *GeofenceHandler {
	return &GeofenceHandler{geofences: geofences}
}

// Create handles POST /api/v1/geofences
func (h *GeofenceHandler) Create(c *gin.Context) {
	var input service.GeofenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	g, err := h.geofences.Create(middleware.UserID(c), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, g)
}

// Get handles GET /api/v1/geofences/:id
func (h *GeofenceHandler) Get(c *gin.Context) {
	g, err := h.geofences.Get(domain.GeofenceID(c.Param("id")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, g)
}

// ListOwn handles GET /api/v1/geofences
func (h *GeofenceHandler) ListOwn(c *gin.Context) {
	list, err := h.geofences.ListOwn(middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  list,
		"total": len(list),
	})
}
