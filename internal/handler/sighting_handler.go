package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// SightingHandler handles HTTP requests for sightings
type SightingHandler struct {
	sightings *service.SightingService
	evaluator *service.EvaluatorService
}

// NewSightingHandler creates a new sighting handler
func NewSightingHandler(sightings *service.SightingService, evaluator *service.EvaluatorService) *SightingHandler {
	return &SightingHandler{sightings: sightings, evaluator: evaluator}
}

// Report handles POST /api/v1/sightings
func (h *SightingHandler) Report(c *gin.Context) {
	var input service.SightingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	sighting, matched, err := h.sightings.Report(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	matchedIDs := make([]domain.SignalID, 0, len(matched))
	for _, m := range matched {
		matchedIDs = append(matchedIDs, m.ID)
	}

	response.Success(c, gin.H{
		"sighting":         sighting,
		"matchedSignalIds": matchedIDs,
	})
}

// Evaluate handles POST /api/v1/sightings/:id/evaluate
func (h *SightingHandler) Evaluate(c *gin.Context) {
	matched, err := h.evaluator.Evaluate(c.Request.Context(), domain.SightingID(c.Param("id")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"data":  matched,
		"total": len(matched),
	})
}

// React handles POST /api/v1/sightings/:id/reactions
func (h *SightingHandler) React(c *gin.Context) {
	var body struct {
		Kind domain.ReactionKind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	sighting, err := h.sightings.React(middleware.UserID(c), domain.SightingID(c.Param("id")), body.Kind)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sighting)
}

// RemoveReaction handles DELETE /api/v1/sightings/:id/reactions
func (h *SightingHandler) RemoveReaction(c *gin.Context) {
	sighting, err := h.sightings.RemoveReaction(middleware.UserID(c), domain.SightingID(c.Param("id")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sighting)
}
