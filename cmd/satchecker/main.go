package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/makeaweli/satchecker/internal/api"
	"github.com/makeaweli/satchecker/internal/auth"
	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/config"
	"github.com/makeaweli/satchecker/internal/db"
	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/ratelimit"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	pool, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	rdb := db.ConnectRedis(cfg)
	if rdb == nil {
		logger.Info("no redis configured, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	authCfg := auth.Config{Enabled: cfg.APIToken != "", Token: cfg.APIToken}
	if authCfg.Enabled {
		logger.Info("tools auth enabled")
	}

	repo := catalog.NewPostgresRepository(pool)
	resolver := catalog.NewResolver(repo, logger)
	engine := ephemeris.NewEngine(resolver, cfg.Workers, logger)
	limiter := ratelimit.New(rdb, cfg.RatePerSecond, cfg.RatePerMinute, logger)

	srv := api.NewServer(engine, repo, limiter, pool, authCfg, logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", cfg.ServerPort,
			"workers", cfg.Workers,
			"rate_per_second", cfg.RatePerSecond,
			"rate_per_minute", cfg.RatePerMinute)
		if err := srv.App.Listen(cfg.ServerPort); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.App.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
