package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// PreferenceHandler handles HTTP requests for per-user signal preferences
type PreferenceHandler struct {
	preferences *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferences *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

type flagBody struct {
	Value *bool `json:"value" binding:"required"`
}

// SetHidden handles PUT /api/v1/signals/:id/preferences/hidden
func (h *PreferenceHandler) SetHidden(c *gin.Context) {
	h.setFlag(c, h.preferences.SetHidden)
}

// SetPinned handles PUT /api/v1/signals/:id/preferences/pinned
func (h *PreferenceHandler) SetPinned(c *gin.Context) {
	h.setFlag(c, h.preferences.SetPinned)
}

// SetUnimportant handles PUT /api/v1/signals/:id/preferences/unimportant
func (h *PreferenceHandler) SetUnimportant(c *gin.Context) {
	h.setFlag(c, h.preferences.SetUnimportant)
}

func (h *PreferenceHandler) setFlag(c *gin.Context, set func(domain.UserID, domain.SignalID, bool) error) {
	var body flagBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	if err := set(middleware.UserID(c), domain.SignalID(c.Param("id")), *body.Value); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// RecordClick handles POST /api/v1/signals/:id/clicks
func (h *PreferenceHandler) RecordClick(c *gin.Context) {
	if err := h.preferences.RecordClick(middleware.UserID(c), domain.SignalID(c.Param("id"))); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"recorded": true})
}
