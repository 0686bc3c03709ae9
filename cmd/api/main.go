// Copyright (c) 2026 Pulseboard. All rights reserved.

// Pulseboard API server entrypoint.
//
// # Startup Sequence
//
//  1. Structured logger
//  2. Environment (.env overlay, then typed config)
//  3. Database pool + connectivity check
//  4. Schema migrations
//  5. Optional bootstrap admin seeding
//  6. HTTP server with graceful shutdown
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pulseboard/pulseboard/internal/api"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/platform/config"
	"github.com/pulseboard/pulseboard/internal/platform/constants"
	"github.com/pulseboard/pulseboard/internal/platform/migration"
	"github.com/pulseboard/pulseboard/internal/platform/postgres"
	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Local development reads a .env overlay; deployed environments inject
	// real environment variables and have no such file.
	if err := godotenv.Load(); err == nil {
		logger.Info("env_file_loaded")
	}

	cfg, err := config.Load()
	must(logger, err, "config_load_failed")

	logger.Info("starting",
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL(), logger)
	must(logger, err, "database_pool_failed")
	defer pool.Close()

	must(logger, postgres.Ping(ctx, pool), "database_ping_failed")

	must(logger, migration.RunUp(cfg.DatabaseURL(), cfg.MigrationPath, logger), "migration_failed")

	userRepository := auth.NewUserRepository(pool)

	if cfg.SeedAdminUser {
		must(logger, auth.SeedAdminUser(ctx, userRepository, logger), "seed_failed")
	}

	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(logger, err, "token_service_failed")

	authService := auth.NewService(userRepository, tokenService, cfg.TokenTTL)
	authHandler := auth.NewHandler(authService)

	server := api.New(cfg, logger, pool, tokenService, authHandler)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		must(logger, err, "server_failed")
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("shutdown_complete")
	}
}

// must logs a fatal startup error and exits.
func must(logger *slog.Logger, err error, message string) {
	if err == nil {
		return
	}
	logger.Error(message, slog.String("error", err.Error()))
	os.Exit(1)
}
