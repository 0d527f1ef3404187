// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package rating

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/marqueeapp/marquee/internal/config"
	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/docstore"
)

func newTestAggregator(t *testing.T) (*Aggregator, *database.DB) {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "256MB",
		Threads:      1,
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	docs, err := docstore.Open(&config.DocStoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("docstore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = docs.Close() })

	return NewAggregator(db, docs), db
}

func insertMovie(t *testing.T, db *database.DB, id int) {
	t.Helper()
	_, err := db.Conn().Exec(
		`INSERT INTO movies (movie_id, title, type, release_date, rating) VALUES (?, ?, 'action', '2024-01-01', 0)`,
		id, "movie",
	)
	if err != nil {
		t.Fatalf("insert movie: %v", err)
	}
}

func movieRating(t *testing.T, db *database.DB, id int) float64 {
	t.Helper()
	rating, err := db.MovieRating(context.Background(), id)
	if err != nil {
		t.Fatalf("MovieRating() error = %v", err)
	}
	return rating
}

func TestSubmitUpdatesAggregate(t *testing.T) {
	agg, db := newTestAggregator(t)
	ctx := context.Background()
	insertMovie(t, db, 1)

	for _, value := range []float64{4, 5} {
		if _, err := agg.Submit(ctx, "user@example.com", 1, value); err != nil {
			t.Fatalf("Submit(%v) error = %v", value, err)
		}
	}

	if got := movieRating(t, db, 1); math.Abs(got-4.5) > 1e-9 {
		t.Errorf("aggregate = %v, want 4.5", got)
	}
}

// The aggregate is a mean over every rating in the store: submissions for
// a second movie pull the first movie's score along when it is next
// recomputed.
func TestSubmitAveragesAcrossAllMovies(t *testing.T) {
	agg, db := newTestAggregator(t)
	ctx := context.Background()
	insertMovie(t, db, 1)
	insertMovie(t, db, 2)

	if _, err := agg.Submit(ctx, "user@example.com", 1, 5); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := agg.Submit(ctx, "user@example.com", 2, 1); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Movie 2's aggregate was computed over both documents: (5+1)/2.
	if got := movieRating(t, db, 2); math.Abs(got-3) > 1e-9 {
		t.Errorf("movie 2 aggregate = %v, want 3", got)
	}
	// Movie 1 still carries the aggregate from its own submission.
	if got := movieRating(t, db, 1); math.Abs(got-5) > 1e-9 {
		t.Errorf("movie 1 aggregate = %v, want 5", got)
	}
}

func TestSubmitRejectsOutOfBounds(t *testing.T) {
	agg, db := newTestAggregator(t)
	ctx := context.Background()
	insertMovie(t, db, 1)

	for _, value := range []float64{-1, 5.5, 6} {
		if _, err := agg.Submit(ctx, "user@example.com", 1, value); !errors.Is(err, docstore.ErrSchemaViolation) {
			t.Errorf("Submit(%v) error = %v, want ErrSchemaViolation", value, err)
		}
	}

	// Rejected submissions leave the aggregate untouched.
	if got := movieRating(t, db, 1); got != 0 {
		t.Errorf("aggregate = %v, want 0", got)
	}
}
