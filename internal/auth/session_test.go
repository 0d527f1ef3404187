// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// sessionStores enumerates both implementations so the contract tests run
// against each.
func sessionStores(t *testing.T, ttl time.Duration) map[string]SessionStore {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return map[string]SessionStore{
		"memory": NewMemorySessionStore(ttl),
		"badger": NewBadgerSessionStore(db, ttl),
	}
}

func TestSessionLifecycle(t *testing.T) {
	for name, store := range sessionStores(t, time.Hour) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			session, err := store.Create(ctx, "user@example.com", "user@example.com")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if session.ID == "" {
				t.Fatal("expected non-empty session id")
			}

			got, err := store.Get(ctx, session.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Email != "user@example.com" {
				t.Errorf("Email = %q, want user@example.com", got.Email)
			}

			if err := store.Delete(ctx, session.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get() after delete = %v, want ErrSessionNotFound", err)
			}

			// Deleting again is not an error.
			if err := store.Delete(ctx, session.ID); err != nil {
				t.Errorf("repeat Delete() error = %v", err)
			}
		})
	}
}

func TestSessionGetNotFound(t *testing.T) {
	for name, store := range sessionStores(t, time.Hour) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get() = %v, want ErrSessionNotFound", err)
			}
		})
	}
}

func TestMemorySessionExpiry(t *testing.T) {
	store := NewMemorySessionStore(time.Millisecond)
	ctx := context.Background()

	session, err := store.Create(ctx, "user@example.com", "user@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Get() = %v, want ErrSessionExpired", err)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := store.Create(ctx, "user@example.com", "user@example.com")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[session.ID] {
			t.Fatalf("duplicate session id %s", session.ID)
		}
		seen[session.ID] = true
	}
}
