package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/sightnet/signals-backend-go/internal/api"
	"github.com/sightnet/signals-backend-go/internal/config"
	"github.com/sightnet/signals-backend-go/internal/database"
	"github.com/sightnet/signals-backend-go/internal/handler"
	"github.com/sightnet/signals-backend-go/internal/repository"
	"github.com/sightnet/signals-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	signals := repository.NewSignalRepository(db)
	geofences := repository.NewGeofenceRepository(db)
	sightings := repository.NewSightingRepository(db)
	reactions := repository.NewReactionRepository(db)
	users := repository.NewUserRepository(db)
	reputations := repository.NewReputationRepository(db)
	privacy := repository.NewPrivacyRepository(db)
	preferences := repository.NewPreferenceRepository(db)
	interactions := repository.NewInteractionRepository(db)
	snapshots := repository.NewSnapshotRepository(db)
	subscriptions := repository.NewSubscriptionRepository(db)

	evaluator := service.NewEvaluatorService(signals, geofences, sightings, reputations, log)
	sightingSvc := service.NewSightingService(sightings, reactions, signals, snapshots, evaluator, log)
	signalSvc := service.NewSignalService(signals, geofences, users, subscriptions, interactions, snapshots, log)
	rankingSvc := service.NewRankingService(signals, geofences, users, privacy, interactions, preferences, snapshots, log)
	preferenceSvc := service.NewPreferenceService(signals, preferences, interactions, log)
	geofenceSvc := service.NewGeofenceService(geofences, users, log)
	profileSvc := service.NewProfileService(users, privacy, reputations, log)

	router := api.SetupRouter(cfg, log, api.Handlers{
		Signals:     handler.NewSignalHandler(signalSvc),
		Feed:        handler.NewFeedHandler(rankingSvc),
		Sightings:   handler.NewSightingHandler(sightingSvc, evaluator),
		Preferences: handler.NewPreferenceHandler(preferenceSvc),
		Geofences:   handler.NewGeofenceHandler(geofenceSvc),
		Profile:     handler.NewProfileHandler(profileSvc),
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
