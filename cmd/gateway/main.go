package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/api"
	"github.com/majiflow/billing-gateway/internal/cache"
	"github.com/majiflow/billing-gateway/internal/core/service"
	"github.com/majiflow/billing-gateway/internal/infrastructure/backend"
	mongodb "github.com/majiflow/billing-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/majiflow/billing-gateway/internal/infrastructure/db/redis"
	"github.com/majiflow/billing-gateway/internal/infrastructure/queue"
	"github.com/majiflow/billing-gateway/internal/pkg/config"
	"github.com/majiflow/billing-gateway/pkg/logger"

	_ "github.com/majiflow/billing-gateway/docs"
)

// @title        Water Billing Admin Gateway
// @version      1.0
// @description  Session, role guard, and cached data gateway in front of the water-utility billing backend.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, log)
	defer audit.Close()

	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	sessionStore := redisdb.NewSessionStore(rdb)
	sessions := service.NewSessionService(backendClient, sessionStore, log)

	requestCache := cache.New(cfg.Cache.TTL)
	go sweepCache(ctx, requestCache, cfg.Cache.SweepInterval, log)

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Backend:  backendClient,
		Cache:    requestCache,
		Audit:    audit,
		Mongo:    db,
		Redis:    rdb,
		Logger:   log,
		DevMode:  cfg.DevMode(),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway listening")

	waitForShutdown(log)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// sweepCache opportunistically evicts expired entries. Every read path
// re-checks expiry, so the sweep only bounds memory, never correctness.
func sweepCache(ctx context.Context, c *cache.Cache, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.CleanExpired(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("cache sweep")
			}
		}
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
