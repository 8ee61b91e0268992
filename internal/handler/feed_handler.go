package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/middleware"
	"github.com/sightnet/signals-backend-go/internal/service"
	"github.com/sightnet/signals-backend-go/pkg/response"
)

// FeedHandler handles HTTP requests for the ranked signal feed
type FeedHandler struct {
	ranking *service.RankingService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(ranking *service.RankingService) *FeedHandler {
	return &FeedHandler{ranking: ranking}
}

// feedQuery binds the ranked-feed query parameters.
type feedQuery struct {
	Lat            *float64 `form:"lat"`
	Lng            *float64 `form:"lng"`
	IncludeHidden  bool     `form:"includeHidden"`
	OwnerID        string   `form:"ownerId"`
	Classification string   `form:"classification"`
	TargetKind     string   `form:"targetKind"`
	ActiveOnly     bool     `form:"activeOnly"`
}

// List handles GET /api/v1/feed
func (h *FeedHandler) List(c *gin.Context) {
	var q feedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, 400, "invalid query parameters")
		return
	}

	opts := service.RankOptions{
		IncludeHidden: q.IncludeHidden,
		Filter: domain.SignalFilter{
			OwnerID:        domain.UserID(q.OwnerID),
			Classification: domain.Classification(q.Classification),
			TargetKind:     domain.TargetKind(q.TargetKind),
			ActiveOnly:     q.ActiveOnly,
		},
	}
	if q.Lat != nil && q.Lng != nil {
		opts.UserLocation = &domain.LatLng{Lat: *q.Lat, Lng: *q.Lng}
	}

	ranked, err := h.ranking.Rank(c.Request.Context(), middleware.UserID(c), opts)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  ranked,
		"total": len(ranked),
	})
}
