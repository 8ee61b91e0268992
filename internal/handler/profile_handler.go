package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /api/v1/me, provisioning the account on first call.
func (h *ProfileHandler) Me(c *gin.Context) {
	var q struct {
		DisplayName string `form:"displayName"`
	}
	_ = c.ShouldBindQuery(&q)

	u, err := h.profiles.EnsureUser(middleware.UserID(c), q.DisplayName)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, u)
}

// GetPrivacy handles GET /api/v1/me/privacy
func (h *ProfileHandler) GetPrivacy(c *gin.Context) {
	settings, err := h.profiles.GetPrivacy(middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, settings)
}

// SetPrivacy handles PUT /api/v1/me/privacy
func (h *ProfileHandler) SetPrivacy(c *gin.Context) {
	var settings domain.PrivacySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	if err := h.profiles.SetPrivacy(middleware.UserID(c), settings); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// AdjustReputation handles POST /api/v1/users/:id/reputation
func (h *ProfileHandler) AdjustReputation(c *gin.Context) {
	var body struct {
		Delta *int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	err := h.profiles.AdjustReputation(middleware.UserID(c), domain.UserID(c.Param("id")), *body.Delta)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// GetReputation handles GET /api/v1/me/reputation
func (h *ProfileHandler) GetReputation(c *gin.Context) {
	progress, err := h.profiles.GetReputationProgress(middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, progress)
}
