// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command galeri runs the password-gated gallery API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/seyhanart/galeri-go/internal/auth"
	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/config"
	"github.com/seyhanart/galeri-go/internal/docstore"
	"github.com/seyhanart/galeri-go/internal/geoip"
	"github.com/seyhanart/galeri-go/internal/handler"
	"github.com/seyhanart/galeri-go/internal/logging"
	"github.com/seyhanart/galeri-go/internal/middleware"
	"github.com/seyhanart/galeri-go/internal/version"
	"github.com/seyhanart/galeri-go/internal/visitlog"
)

// Build-time version information injected via ldflags.
var (
	appVersion   = "dev"
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "galeri - password-gated gallery API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_SESSION_SECRET       Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_GATE_PASSWORD_HASH   argon2id hash of the gallery password (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_ADMIN_PASSWORD_HASH  argon2id hash of the admin password (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_DATA_DIR             JSON document directory (default: ./data)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_REDIS_URL            Redis URL for the remote document store (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_GEOIP_DB_PATH        GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GALERI_LOG_RETENTION_DAYS   Prune access logs older than N days (0 = keep)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("galeri %s\n", info)
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

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
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

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	ring := logging.NewRingHandler(textHandler, logging.DefaultRingSize)
	logger := slog.New(ring)
	slog.SetDefault(logger)
	slog.Info("starting galeri", "version", versionInfo.String(), "env", cfg.Env)

	// Ensure the document directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Document store: local files, optionally fronted by Redis with
	// lazy migration of existing file documents.
	fileBackend := docstore.NewFileBackend(cfg.DataDir)
	var backend docstore.Backend = fileBackend
	if cfg.UseRedisStore() {
		redisOpts := docstore.DefaultRedisOptions()
		redisOpts.URL = cfg.RedisURL
		redisOpts.Prefix = cfg.RedisPrefix
		remote, err := docstore.NewRedisBackend(redisOpts)
		if err != nil {
			slog.Warn("remote store unreachable, using file store only", "error", err)
		} else {
			defer func() {
				if err := remote.Close(); err != nil {
					slog.Error("closing remote store", "error", err)
				}
			}()
			backend = docstore.NewAdapter(remote, fileBackend, logger)
			slog.Info("remote document store enabled", "prefix", cfg.RedisPrefix)
		}
	}

	// GeoIP is optional; a failed load only disables the lookups.
	var geo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		geo = geoip.NewLookup()
		if err := geo.Init(cfg.GeoIPDBPath, cfg.GeoIPCityDBPath); err != nil {
			slog.Warn("GeoIP disabled", "error", err)
		} else {
			defer func() { _ = geo.Close() }()
			slog.Info("GeoIP enabled", "country_db", cfg.GeoIPDBPath, "city_db", cfg.GeoIPCityDBPath)
		}
	}

	projectOpts := catalog.ProjectOptions{
		MediaBaseURL: cfg.MediaBaseURL,
		USDDivisor:   cfg.USDFallbackDivisor,
	}

	artworks := catalog.NewRepository(backend, logger, cfg.USDFallbackDivisor)
	categories := catalog.NewCategoryRepository(backend, logger)
	visits := visitlog.NewRepository(backend, logger)

	var geoResolver visitlog.GeoResolver
	if geo != nil && geo.IsEnabled() {
		geoResolver = geo
	}

	retention := visitlog.NewRetentionJob(visits, cfg.LogRetentionDays, logger)
	if err := retention.Start(); err != nil {
		return fmt.Errorf("starting retention job: %w", err)
	}
	defer retention.Stop()

	h := handler.New(handler.Deps{
		Logger:            logger,
		Artworks:          artworks,
		Categories:        categories,
		Listing:           catalog.NewListing(artworks, projectOpts),
		Visits:            visits,
		Sessions:          visitlog.NewService(visits, geoResolver),
		Tokens:            auth.NewTokenIssuer(cfg.SessionSecret),
		Limiter:           middleware.NewLoginLimiter(0.5, 5),
		Ring:              ring,
		Version:           versionInfo,
		ProjectOpts:       projectOpts,
		GatePasswordHash:  cfg.GatePasswordHash,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(cfg.AllowedOrigins),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
