package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/conference-registration/internal/config"
	"github.com/iliyamo/conference-registration/internal/database"
	"github.com/iliyamo/conference-registration/internal/handler"
	"github.com/iliyamo/conference-registration/internal/middleware"
	"github.com/iliyamo/conference-registration/internal/pricing"
	"github.com/iliyamo/conference-registration/internal/queue"
	"github.com/iliyamo/conference-registration/internal/repository"
	"github.com/iliyamo/conference-registration/internal/router"
	"github.com/iliyamo/conference-registration/internal/service"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "conference-registration").Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	fees := repository.NewFeeRepo(db)
	periods := repository.NewPeriodRepo(db)
	regs := repository.NewRegistrationRepo(db)
	content := repository.NewContentRepo(db)
	store := repository.NewSubmissionStore(regs, users, cfg.BcryptCost)

	// Domain services.
	resolver := pricing.NewResolver(periods, fees)
	events := service.NewPublisher(cfg.AMQPURL, log)
	regSvc := service.NewRegistrationService(store, resolver, events, log)

	// Background consumer mirrors submissions and payment decisions into
	// the audit log.  It reconnects on its own, so a broker outage never
	// takes the HTTP server down with it.
	go queue.StartRegistrationConsumer(cfg.AMQPURL, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterPublic(e,
		handler.NewFeeHandler(resolver, fees, periods),
		handler.NewRegistrationHandler(regSvc),
		handler.NewContentHandler(content),
		ratelimit, cache)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e,
		handler.NewAdminRegistrationHandler(regs, events, log),
		handler.NewAdminPricingHandler(fees, periods),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
