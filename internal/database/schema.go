// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core relational tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		// Email is the primary identifier; uniqueness is enforced here,
		// not by the application.
		`CREATE TABLE IF NOT EXISTS users (
			email TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password TEXT NOT NULL,
			creation_date DATE
		)`,

		// Address sub-record, written in the same transaction as its user.
		`CREATE TABLE IF NOT EXISTS addresses (
			email TEXT NOT NULL,
			country TEXT,
			street TEXT,
			city TEXT
		)`,

		// rating is derived; only the rating aggregator writes it.
		`CREATE TABLE IF NOT EXISTS movies (
			movie_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			release_date DATE,
			rating DOUBLE DEFAULT 0,
			author TEXT,
			poster TEXT,
			backdrop_poster TEXT
		)`,

		// Read-side join table for the seen-movies listing. Populated by an
		// external ingest, read-only here.
		`CREATE TABLE IF NOT EXISTS seen_movies (
			email TEXT NOT NULL,
			movie_id INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_movies_type ON movies(type)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating)`,
		`CREATE INDEX IF NOT EXISTS idx_seen_movies_email ON seen_movies(email)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}
