// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/navkit/internal/cache"
	"github.com/olegiv/navkit/internal/config"
	"github.com/olegiv/navkit/internal/handler"
	"github.com/olegiv/navkit/internal/logging"
	"github.com/olegiv/navkit/internal/middleware"
	"github.com/olegiv/navkit/internal/nav"
	"github.com/olegiv/navkit/internal/scheduler"
	"github.com/olegiv/navkit/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "navkit - Navigation Configuration Service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_ADMIN_TOKEN     Admin API bearer token (required, min 16 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_DB_PATH         SQLite database path (default: ./data/navkit.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_FALLBACK_JSON   Fallback navigation document (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVKIT_DO_SEED         Seed demo categories and topics (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("navkit %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed demo data
	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, logger); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Initialize cache backend: Redis when configured, in-memory otherwise
	cacher, err := cache.New(cache.Options{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTL(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache backend initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache backend initialized", "backend", "memory", "max_size", cfg.CacheMaxSize)
	}

	queries := store.New(db)

	// Navigation document store and panel feed query
	navStore := nav.NewStore(nav.StoreOptions{
		Source:        queries,
		Directory:     queries,
		Cache:         cacher,
		FallbackJSON:  cfg.FallbackJSON,
		MaxPanelItems: cfg.MaxPanelItems,
		TTL:           cfg.CacheTTL(),
		Logger:        logger,
	})
	feed := nav.NewFeedQuery(nav.FeedQueryOptions{
		Topics:        queries,
		Directory:     queries,
		Cache:         cacher,
		MaxPanelItems: cfg.MaxPanelItems,
		TTL:           cfg.CacheTTL(),
		Logger:        logger,
	})

	// Initialize and start scheduler
	sched := scheduler.New(db, logger, cfg.EventRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := handler.New(handler.Options{
		Store:   navStore,
		Feed:    feed,
		Queries: queries,
		Cache:   cacher,
		Logger:  logger,
	})

	// Router setup
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.ResolveViewer)

	h.Routes(r, handler.RouteOptions{
		AdminToken:          cfg.AdminToken,
		ConfigRatePerMinute: cfg.ConfigRatePerMinute,
		PanelRatePerMinute:  cfg.PanelRatePerMinute,
	})
	r.Get("/healthz", h.Health)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
