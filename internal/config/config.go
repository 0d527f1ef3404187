// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package config provides centralized configuration for all Marquee
// components: HTTP server, relational store (DuckDB), document store
// (BadgerDB), security (JWT + sessions), and logging.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml)
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	DocStore DocStoreConfig `koanf:"docstore"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - PORT: Listen port (default: 8080)
//   - HOST: Bind address (default: 0.0.0.0)
//   - SERVER_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds relational store (DuckDB) settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/marquee.duckdb)
//   - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
//   - DUCKDB_THREADS: Worker threads, 0 = runtime.NumCPU()
//   - DUCKDB_MAX_OPEN_CONNS: Connection pool bound (default: 8)
//   - DUCKDB_SEED_MOCK_DATA: Seed development movie data (default: false)
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// DocStoreConfig holds document store (BadgerDB) settings.
// The document store owns ratings, comments, and messages.
//
// Environment Variables:
//   - DOCSTORE_PATH: Badger directory (default: /data/docstore)
//   - DOCSTORE_IN_MEMORY: Run Badger fully in memory (default: false)
type DocStoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SecurityConfig holds authentication and rate limiting settings.
//
// Two independent credential channels are configured here: the signed
// bearer token (JWTSecret, fixed 1h expiry) and the server-side session
// (SessionSecret for the cookie codec, SessionTimeout for the store TTL).
//
// Environment Variables:
//   - JWT_SECRET_KEY: Token signing key (required, 32+ characters)
//   - SESSION_SECRET: Cookie hash key (required, 32+ characters)
//   - SESSION_TIMEOUT: Session store TTL (default: 24h)
//   - SESSION_STORE: "memory" or "badger" (default: badger)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQS / RATE_LIMIT_WINDOW: Request budget per client IP
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionSecret     string        `koanf:"session_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	SessionStore      string        `koanf:"session_store"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// minSecretLength is the minimum accepted length for signing secrets.
const minSecretLength = 32

// Validate checks the configuration for missing or malformed values.
// It is called by Load() after all sources are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if !c.DocStore.InMemory && c.DocStore.Path == "" {
		return fmt.Errorf("docstore.path is required unless docstore.in_memory is set")
	}
	if len(c.Security.JWTSecret) < minSecretLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", minSecretLength)
	}
	if len(c.Security.SessionSecret) < minSecretLength {
		return fmt.Errorf("security.session_secret must be at least %d characters", minSecretLength)
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive, got %s", c.Security.SessionTimeout)
	}
	switch c.Security.SessionStore {
	case "memory", "badger":
	default:
		return fmt.Errorf("security.session_store must be \"memory\" or \"badger\", got %q", c.Security.SessionStore)
	}
	return nil
}
