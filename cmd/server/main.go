// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package main is the entry point for the Marquee server application.
//
// Marquee is a REST backend for a movie-rating application: account
// registration and login, a movie catalog with aggregate ratings,
// per-movie comments, and a small message board.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Relational store: Initialize DuckDB (users, movies, seen movies)
//  3. Document store: Initialize BadgerDB (ratings, comments, messages)
//  4. Authentication: JWT token manager, session store, and cookie codec
//  5. Rating aggregator: Serialized aggregate recomputation on submission
//  6. HTTP server: Chi route tree with Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Required settings:
//   - JWT_SECRET_KEY: 32+ character secret for token signing
//   - SESSION_SECRET: 32+ character key for the session cookie codec
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the document store and database connections
//
// # Example Usage
//
// Development with seeded catalog data:
//
//	export JWT_SECRET_KEY=$(openssl rand -base64 32)
//	export SESSION_SECRET=$(openssl rand -base64 32)
//	export DUCKDB_SEED_MOCK_DATA=true
//	export SESSION_STORE=memory
//	./marquee
//
// Production with persistent sessions:
//
//	export JWT_SECRET_KEY=...
//	export SESSION_SECRET=...
//	export DUCKDB_PATH=/data/marquee.duckdb
//	export DOCSTORE_PATH=/data/docstore
//	export SESSION_STORE=badger
//	./marquee
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/marqueeapp/marquee/internal/api"
	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/config"
	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/rating"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting Marquee")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// Initialize relational store (users, movies, seen movies)
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Seed mock catalog data if enabled (for development and demos)
	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (DUCKDB_SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	// Initialize document store (ratings, comments, messages)
	docs, err := docstore.Open(&cfg.DocStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize document store")
	}
	defer func() {
		if err := docs.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()
	logging.Info().Bool("in_memory", cfg.DocStore.InMemory).Msg("Document store initialized")

	// Session store backs the cookie channel. The badger store shares
	// the document store's instance so sessions survive restarts.
	var sessions auth.SessionStore
	switch cfg.Security.SessionStore {
	case "badger":
		sessions = auth.NewBadgerSessionStore(docs.DB(), cfg.Security.SessionTimeout)
		logging.Info().Msg("Persistent session store enabled (SESSION_STORE=badger)")
	default:
		sessions = auth.NewMemorySessionStore(cfg.Security.SessionTimeout)
		logging.Warn().Msg("In-memory session store enabled; sessions are lost on restart (SESSION_STORE=memory)")
	}

	tokens := auth.NewJWTManager(cfg.Security.JWTSecret)
	cookies := auth.NewCookieCodec(cfg.Security.SessionSecret, cfg.Security.SessionTimeout)
	authenticator := auth.NewAuthenticator(tokens, sessions, cookies)

	aggregator := rating.NewAggregator(db, docs)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}
	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*); set specific origins in production")
	}

	handler := api.NewHandler(cfg, db, docs, aggregator, tokens, sessions, cookies, authenticator)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Track uptime for the /metrics endpoint
	started := time.Now()
	uptimeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(started).Seconds())
			case <-uptimeDone:
				return
			}
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	close(uptimeDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
