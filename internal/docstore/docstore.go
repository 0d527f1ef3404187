// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package docstore is the document store adapter backed by BadgerDB.
//
// It owns the schemaless side of the system: rating submissions, movie
// comments, and user messages, stored as JSON values under typed key
// prefixes. Field requirements and value bounds are enforced here, at the
// store boundary, the way a document database applies its collection
// schema.
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/marqueeapp/marquee/internal/config"
	"github.com/marqueeapp/marquee/internal/logging"
)

// Key prefixes for the document collections.
const (
	ratingKeyPrefix  = "rating:"
	commentKeyPrefix = "comment:"
	messageKeyPrefix = "message:"
)

// Schema errors. A write that violates the collection schema fails with an
// error wrapping ErrSchemaViolation.
var (
	// ErrSchemaViolation indicates a document failed its collection schema.
	ErrSchemaViolation = errors.New("document schema violation")

	// ErrMessageNotFound indicates no message exists for the given id.
	ErrMessageNotFound = errors.New("message not found")
)

// Store provides access to the document collections.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the BadgerDB-backed document store.
func Open(cfg *config.DocStoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := filepath.Clean(cfg.Path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create docstore directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	// Badger's own logger is noisy; application logging goes through zerolog.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open docstore: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("Document store opened")
	return &Store{db: db}, nil
}

// DB exposes the underlying BadgerDB instance so other components (the
// badger-backed session store) can share a single database handle.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Close closes the underlying BadgerDB instance.
func (s *Store) Close() error {
	return s.db.Close()
}
