// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the brand studio API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandstudio/internal/cache"
	"brandstudio/internal/config"
	"brandstudio/internal/database"
	"brandstudio/internal/handlers"
	"brandstudio/internal/logging"
	"brandstudio/internal/middleware"
	"brandstudio/internal/router"
	"brandstudio/internal/session"
	"brandstudio/internal/storage"
	"brandstudio/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env in development).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: colored text on a terminal, JSON in production.
	logger := logging.NewLogger(os.Stdout, logging.FormatFor(cfg.Env), logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"canvas_strict", cfg.CanvasStrict,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed a demo brand in development (no-op if brands already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (brand identity cache + editor sessions).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize data stores.
	templateStore := store.NewTemplateStore(db)
	brandStore := store.NewBrandStore(db)
	assetStore := store.NewAssetStore(db)

	brandCache := cache.NewBrandCache(valkeyClient, brandStore, cfg.BrandCacheTTL)
	// Drop identities cached by a previous run; migrations and seeding
	// write brands without going through the cache.
	brandCache.InvalidateAll(context.Background())
	sessionStore := session.NewStore(valkeyClient, cfg.EditorSessionTTL, !cfg.IsDev())

	deps := handlers.Deps{
		Templates:  templateStore,
		Brands:     brandStore,
		Assets:     assetStore,
		Identities: brandCache,
		Sessions:   sessionStore,
		Logger:     logger,
		Strict:     cfg.CanvasStrict,
	}

	// Connect to S3-compatible object storage (optional; uploads answer 503 without it).
	if cfg.HasStorage() {
		bucket, err := storage.New(storage.Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if bucket != nil {
			deps.Objects = bucket
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", bucket.Name())
		}
	} else {
		slog.Warn("s3 storage not configured, asset uploads disabled")
	}

	limiter := middleware.PerMinute(cfg.RateLimitPerMinute)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(deps), limiter, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
