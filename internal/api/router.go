package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/config"
	"github.com/sightnet/signals-backend-go/internal/handler"
	"github.com/sightnet/signals-backend-go/internal/middleware"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Signals     *handler.SignalHandler
	Feed        *handler.FeedHandler
	Sightings   *handler.SightingHandler
	Preferences *handler.PreferenceHandler
	Geofences   *handler.GeofenceHandler
	Profile     *handler.ProfileHandler
}

// SetupRouter builds the gin engine with middleware and all API routes
func SetupRouter(cfg *config.Config, log zerolog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	r.Use(limiter.Middleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Signals Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		signals := api.Group("/signals")
		{
			signals.POST("", h.Signals.Create)
			signals.GET("/:id", h.Signals.Get)
			signals.PUT("/:id", h.Signals.Update)
			signals.DELETE("/:id", h.Signals.Delete)
			signals.PUT("/:id/active", h.Signals.SetActive)
			signals.POST("/:id/subscribe", h.Signals.Subscribe)
			signals.DELETE("/:id/subscribe", h.Signals.Unsubscribe)

			signals.PUT("/:id/preferences/hidden", h.Preferences.SetHidden)
			signals.PUT("/:id/preferences/pinned", h.Preferences.SetPinned)
			signals.PUT("/:id/preferences/unimportant", h.Preferences.SetUnimportant)
			signals.POST("/:id/clicks", h.Preferences.RecordClick)
		}

		api.GET("/feed", h.Feed.List)

		geofences := api.Group("/geofences")
		{
			geofences.POST("", h.Geofences.Create)
			geofences.GET("", h.Geofences.ListOwn)
			geofences.GET("/:id", h.Geofences.Get)
		}

		me := api.Group("/me")
		{
			me.GET("", h.Profile.Me)
			me.GET("/privacy", h.Profile.GetPrivacy)
			me.PUT("/privacy", h.Profile.SetPrivacy)
			me.GET("/reputation", h.Profile.GetReputation)
		}
		api.POST("/users/:id/reputation", h.Profile.AdjustReputation)

		sightings := api.Group("/sightings")
		{
			sightings.POST("", h.Sightings.Report)
			sightings.POST("/:id/evaluate", h.Sightings.Evaluate)
			sightings.POST("/:id/reactions", h.Sightings.React)
			sightings.DELETE("/:id/reactions", h.Sightings.RemoveReaction)
		}
	}

	return r
}
