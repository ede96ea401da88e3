// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Api is the entry point for the Pacer HTTP API server.

The server tracks instructional pace for every student across two
PostgreSQL databases: a domain store (courses, goals, calendar, staff and
student rosters) and a separate auth store (credentials and session keys).

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT            Port to listen on (default: 8080)
	ENVIRONMENT            deployment environment (development, production)
	DATA_DB_CONNECT_STRING Postgres connection string for the domain store (required)
	AUTH_DB_CONNECT_STRING Postgres connection string for the auth store (required)
	REDIS_URL              Redis connection string (required)
	ADMIN_UNAME/PASSWORD/EMAIL  bootstrap credentials for the single Admin account

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to both Postgres databases and Redis.
 4. Migration: Run idempotent schema updates against each store.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/pacer/internal/api"
	"github.com/taibuivan/pacer/internal/authstore"
	"github.com/taibuivan/pacer/internal/catalog"
	"github.com/taibuivan/pacer/internal/coordinator"
	"github.com/taibuivan/pacer/internal/dispatch"
	"github.com/taibuivan/pacer/internal/domainstore"
	"github.com/taibuivan/pacer/internal/globcache"
	"github.com/taibuivan/pacer/internal/goalstore"
	"github.com/taibuivan/pacer/internal/loginhandler"
	"github.com/taibuivan/pacer/internal/platform/config"
	"github.com/taibuivan/pacer/internal/platform/constants"
	"github.com/taibuivan/pacer/internal/platform/migration"
	pgstore "github.com/taibuivan/pacer/internal/platform/postgres"
	redisstore "github.com/taibuivan/pacer/internal/platform/redis"
	"github.com/taibuivan/pacer/internal/sessiongate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "pacer"))
	slog.SetDefault(log)

	log.Info("pacer_service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "pacer"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL — two separate databases, domain and auth.
	dataPool, err := pgstore.NewPool(startupCtx, cfg.DataDatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to data postgres: %w", err)
	}
	defer func() {
		log.Info("closing data postgres pool")
		dataPool.Close()
	}()

	authPool, err := pgstore.NewPool(startupCtx, cfg.AuthDatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to auth postgres: %w", err)
	}
	defer func() {
		log.Info("closing auth postgres pool")
		authPool.Close()
	}()

	// # 4. Redis — Global Cache invalidation pub/sub and culler leader election.
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DataDatabaseURL, cfg.DataMigrationPath, log); err != nil {
		return fmt.Errorf("run data migrations: %w", err)
	}
	if err := migration.RunUp(cfg.AuthDatabaseURL, cfg.AuthMigrationPath, log); err != nil {
		return fmt.Errorf("run auth migrations: %w", err)
	}

	// # 6. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			if err := pgstore.Ping(context.Background(), dataPool); err != nil {
				return err
			}
			return pgstore.Ping(context.Background(), authPool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 7. Domain Stores
	courseRepo := catalog.NewCourseRepository(dataPool)
	catalogSvc := catalog.NewService(courseRepo, log)
	goalRepo := goalstore.NewGoalRepository(dataPool)
	loader := domainstore.NewLoader(dataPool, courseRepo)
	authSvc := authstore.NewStore(authPool, 0)

	// # 8. Global Cache
	cache := globcache.New(loader, rdb, log)
	if err := cache.RefreshAll(startupCtx); err != nil {
		return fmt.Errorf("prime global cache: %w", err)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	go cache.Subscribe(appCtx)

	// # 9. Coordinator & Session Gate
	coord := coordinator.New(dataPool, authSvc, cache, log)
	gate := sessiongate.New(authSvc, cache, sessiongate.DefaultLoginRate, sessiongate.DefaultLoginBurst)
	go gate.RunLimiterCleanup(appCtx, constants.RateLimitCleanupInterval, constants.RateLimitClientTTL)
	go sessiongate.RunCuller(appCtx, authSvc, rdb, log)

	if err := coord.BootstrapAdmin(startupCtx, cfg.AdminUname, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}

	// # 10. Handlers
	dispatchHdl := dispatch.New(catalogSvc, goalRepo, coord, cache, loader, log)
	loginHdl := loginhandler.NewHandler(gate)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Login:     loginHdl,
		Dispatch:  dispatchHdl,
	}

	server := api.NewServer(appCtx, cfg, log, gate, handlers)

	// # 11. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("pacer_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
