// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate().
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = strings.Repeat("j", 32)
	cfg.Security.SessionSecret = strings.Repeat("s", 32)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.Timeout = -time.Second },
			wantErr: "server.timeout",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "zero pool size",
			mutate:  func(c *Config) { c.Database.MaxOpenConns = 0 },
			wantErr: "database.max_open_conns",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "short" },
			wantErr: "security.jwt_secret",
		},
		{
			name:    "short session secret",
			mutate:  func(c *Config) { c.Security.SessionSecret = "short" },
			wantErr: "security.session_secret",
		},
		{
			name:    "unknown session store",
			mutate:  func(c *Config) { c.Security.SessionStore = "redis" },
			wantErr: "security.session_store",
		},
		{
			name: "missing docstore path",
			mutate: func(c *Config) {
				c.DocStore.Path = ""
				c.DocStore.InMemory = false
			},
			wantErr: "docstore.path",
		},
		{
			name: "in-memory docstore needs no path",
			mutate: func(c *Config) {
				c.DocStore.Path = ""
				c.DocStore.InMemory = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"PORT", "server.port"},
		{"JWT_SECRET_KEY", "security.jwt_secret"},
		{"SESSION_SECRET", "security.session_secret"},
		{"DUCKDB_PATH", "database.path"},
		{"DOCSTORE_PATH", "docstore.path"},
		{"LOG_LEVEL", "logging.level"},
		{"UNRELATED_VAR", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", strings.Repeat("a", 40))
	t.Setenv("SESSION_SECRET", strings.Repeat("b", 40))
	t.Setenv("PORT", "9090")
	t.Setenv("DOCSTORE_IN_MEMORY", "true")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.DocStore.InMemory {
		t.Error("DocStore.InMemory = false, want true")
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "http://localhost:5173" {
		t.Errorf("CORSOrigins[1] = %q", cfg.Security.CORSOrigins[1])
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() expected validation error without secrets, got nil")
	}
}
