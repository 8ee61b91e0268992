package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// SignalHandler handles HTTP requests for signals
type SignalHandler struct {
	service *service.SignalService
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(service *service.SignalService) *SignalHandler {
	return &SignalHandler{service: service}
}

// Create handles POST /api/v1/signals
func (h *SignalHandler) Create(c *gin.Context) {
	var input service.SignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	sig, err := h.service.Create(middleware.UserID(c), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sig)
}

// Get handles GET /api/v1/signals/:id
func (h *SignalHandler) Get(c *gin.Context) {
	sig, err := h.service.Get(domain.SignalID(c.Param("id")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sig)
}

// Update handles PUT /api/v1/signals/:id
func (h *SignalHandler) Update(c *gin.Context) {
	var input service.SignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	sig, err := h.service.Update(middleware.UserID(c), domain.SignalID(c.Param("id")), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sig)
}

// Delete handles DELETE /api/v1/signals/:id
func (h *SignalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.UserID(c), domain.SignalID(c.Param("id"))); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// SetActive handles PUT /api/v1/signals/:id/active
func (h *SignalHandler) SetActive(c *gin.Context) {
	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, 400, "invalid request body")
		return
	}

	sig, err := h.service.SetActive(middleware.UserID(c), domain.SignalID(c.Param("id")), body.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sig)
}

// Subscribe handles POST /api/v1/signals/:id/subscribe
func (h *SignalHandler) Subscribe(c *gin.Context) {
	if err := h.service.Subscribe(middleware.UserID(c), domain.SignalID(c.Param("id"))); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unsubscribe handles DELETE /api/v1/signals/:id/subscribe
func (h *SignalHandler) Unsubscribe(c *gin.Context) {
	if err := h.service.Unsubscribe(middleware.UserID(c), domain.SignalID(c.Param("id"))); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
