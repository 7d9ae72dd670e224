// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the FocusWord content API server.
// It loads configuration, connects to services, rebuilds pending publish
// jobs, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"focusword/internal/cache"
	"focusword/internal/config"
	"focusword/internal/content"
	"focusword/internal/database"
	"focusword/internal/handlers"
	"focusword/internal/metrics"
	"focusword/internal/router"
	"focusword/internal/scheduler"
	"focusword/internal/store"
)

func main() {
	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from .env and environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
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

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey when configured. The API runs without it; reads
	// just skip the view cache.
	var valkeyClient *redis.Client
	var viewCache *cache.ViewCache
	if cfg.ValkeyAddr() != "" {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		viewCache = cache.NewViewCache(valkeyClient, cache.DefaultViewTTL)
	} else {
		slog.Warn("valkey not configured — view cache disabled")
	}

	// Prometheus registry with process and Go runtime collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	stats := metrics.NewCollector(registry)

	// Initialize data stores.
	contentStore := store.NewContentStore(db)
	userStore := store.NewUserStore(db)
	templateStore := store.NewTemplateStore(db)
	categoryStore := store.NewCategoryStore(db)
	presetStore := store.NewSEOPresetStore(db)
	fileStore := store.NewFileStore(db)

	// The publish-job registry and the content engine.
	jobs := scheduler.New()
	defer jobs.StopAll()

	svc := content.New(
		contentStore,
		userStore,
		templateStore,
		categoryStore,
		presetStore,
		fileStore,
		jobs,
		viewCache,
		stats,
	)

	// Rebuild pending publish jobs from WAIT_FOR_PUBLISH drafts. Drafts
	// whose instant passed while the process was down publish right away.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := svc.ReconcileJobs(startupCtx); err != nil {
		cancelStartup()
		slog.Error("failed to reconcile publish jobs", "error", err)
		os.Exit(1)
	}
	cancelStartup()

	api := handlers.NewAPI(svc)
	r := router.New(api, stats, registry)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an interrupt or termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Stop pending timers first so no job fires into a closing server.
	jobs.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
