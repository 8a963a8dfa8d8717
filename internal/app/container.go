package app

import (
	"context"
	"log"
	"os"
	"time"

	"talentswipe/internal/analytics"
	"talentswipe/internal/config"
	"talentswipe/internal/database"
	"talentswipe/internal/database/migration"
	dbpostgres "talentswipe/internal/database/postgres"
	"talentswipe/internal/infrastructure/cache"
	"talentswipe/internal/repository"
	"talentswipe/internal/usecase"
	"talentswipe/internal/ws"
)

// Container owns every long-lived dependency. Close releases them in
// reverse construction order.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Tracker *analytics.Tracker
	Hub     *ws.Hub

	Swipes    usecase.SwipeUsecase
	Matches   usecase.MatchUsecase
	Cooldown  usecase.CooldownUsecase
	Discovery usecase.DiscoveryUsecase
	Messages  usecase.MessageUsecase

	Notifier *ws.Notifier
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migration.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	tracker := analytics.NewTracker(redisCache, cfg.Analytics.StreamKey, cfg.Analytics.QueueSize, logger)

	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub, logger)

	swipeRepo := repository.NewPostgresSwipeRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	unmatchRepo := repository.NewPostgresUnmatchRepository(db)
	settingsRepo := repository.NewPostgresRecruiterSettingsRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)

	cooldownUC := usecase.NewCooldownUsecase(settingsRepo, unmatchRepo)
	swipeUC := usecase.NewSwipeUsecase(swipeRepo, matchRepo, jobRepo, profileRepo, notifier, tracker, logger)
	matchUC := usecase.NewMatchUsecase(matchRepo, unmatchRepo, settingsRepo, redisCache, tracker, logger)
	discoveryUC := usecase.NewDiscoveryUsecase(profileRepo, matchRepo, settingsRepo, cooldownUC, redisCache, logger)
	messageUC := usecase.NewMessageUsecase(messageRepo, matchRepo, notifier, tracker)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Tracker:   tracker,
		Hub:       hub,
		Swipes:    swipeUC,
		Matches:   matchUC,
		Cooldown:  cooldownUC,
		Discovery: discoveryUC,
		Messages:  messageUC,
		Notifier:  notifier,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.Tracker != nil {
		c.Tracker.Close()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("redis close error | error=%v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
