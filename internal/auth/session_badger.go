// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// sessionKeyPrefix namespaces session entries inside the shared BadgerDB
// instance, alongside the document collections.
const sessionKeyPrefix = "session:"

// BadgerSessionStore persists sessions in BadgerDB so logins survive a
// process restart. It shares the database handle with the document store.
type BadgerSessionStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerSessionStore creates a session store on top of an already-open
// BadgerDB instance.
func NewBadgerSessionStore(db *badger.DB, ttl time.Duration) *BadgerSessionStore {
	return &BadgerSessionStore{db: db, ttl: ttl}
}

// Create persists a new session with a Badger-level TTL matching the
// session expiry, so stale entries are reclaimed without a sweeper.
func (s *BadgerSessionStore) Create(ctx context.Context, userID, email string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:        id,
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(sessionKeyPrefix+id), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Get returns the session for id.
func (s *BadgerSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}
	// The Badger TTL and the session expiry are set together, but check the
	// wall clock anyway in case the entry outlives its value GC.
	if session.Expired() {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// Delete removes a session.
func (s *BadgerSessionStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(sessionKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
