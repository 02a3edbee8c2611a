package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexlink/consultation-api/internal/api"
	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/infrastructure/config"
	mongodb "github.com/lexlink/consultation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lexlink/consultation-api/internal/infrastructure/db/redis"
	"github.com/lexlink/consultation-api/pkg/logger"

	_ "github.com/lexlink/consultation-api/docs"
)

const shutdownTimeout = 15 * time.Second

// @title        Lexlink Consultation API
// @version      1.0
// @description  Lawyer consultation booking service: directory, scheduling, reviews and dashboards.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development", nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// The slot-uniqueness and username indexes are part of the correctness
	// story, not an optimisation; refuse to start without them.
	if err := mongodb.NewBookingRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure booking indexes")
	}
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure account indexes")
	}

	// Bootstrap admins: without at least one admin in the store nobody could
	// ever grant the admin role.
	userRepo := mongodb.NewUserRepository(db)
	for _, identity := range cfg.AdminIdentities {
		if err := userRepo.SetAdminRole(ctx, identity, domain.AdminRoleAdmin); err != nil {
			log.Fatal().Err(err).Str("identity", identity).Msg("failed to bootstrap admin")
		}
		log.Info().Str("identity", identity).Msg("bootstrapped admin identity")
	}

	e, dispatcher := api.NewRouter(db, rdb, cfg.JWTSecret, cfg.AuditWorkers, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	dispatcher.Stop()
	log.Info().Msg("server stopped")
}
