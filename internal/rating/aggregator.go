// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package rating implements the two-store rating pipeline: each submission
// is appended to the document store, then the movie's aggregate rating in
// the relational store is recomputed and persisted.
package rating

import (
	"context"
	"fmt"
	"sync"

	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/models"
)

// Aggregator coordinates rating submissions across the document store and
// the relational store.
type Aggregator struct {
	db   *database.DB
	docs *docstore.Store
	mu   sync.Mutex // serializes submit-then-recompute cycles
}

// NewAggregator creates a rating aggregator over both stores.
func NewAggregator(db *database.DB, docs *docstore.Store) *Aggregator {
	return &Aggregator{db: db, docs: docs}
}

// Submit appends a rating and recomputes the movie's aggregate.
//
// The aggregate is the mean over every rating document in the store, not
// just this movie's: ratings for one title shift the displayed score of
// every other. This matches the upstream aggregation behavior and is kept
// deliberately; see DESIGN.md before changing it.
//
// The two stores are not linked by a transaction. When the aggregate
// update fails after the document insert succeeded, the rating document
// remains and the error is returned; the aggregate catches up on the next
// successful submission.
func (a *Aggregator) Submit(ctx context.Context, email string, movieID int, value float64) (*models.Rating, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.docs.InsertRating(ctx, email, movieID, value)
	if err != nil {
		return nil, err
	}

	mean, count, err := a.globalMean(ctx)
	if err != nil {
		return nil, fmt.Errorf("recompute aggregate: %w", err)
	}

	if err := a.db.UpdateMovieRating(ctx, movieID, mean); err != nil {
		return nil, fmt.Errorf("persist aggregate: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Int("movie_id", movieID).
		Float64("rating", value).
		Float64("aggregate", mean).
		Int("sample_size", count).
		Msg("Movie aggregate updated")
	return doc, nil
}

// globalMean averages every rating document in the store.
func (a *Aggregator) globalMean(ctx context.Context) (float64, int, error) {
	ratings, err := a.docs.AllRatings(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(ratings) == 0 {
		return 0, 0, nil
	}

	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / float64(len(ratings)), len(ratings), nil
}
