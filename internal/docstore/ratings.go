// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/marqueeapp/marquee/internal/models"
)

// InsertRating appends a rating submission. Ratings are append-only; there
// is no update or delete path. The collection schema requires email and a
// rating value between 0 and 5.
func (s *Store) InsertRating(ctx context.Context, email string, movieID int, rating float64) (*models.Rating, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrSchemaViolation)
	}
	if movieID < 0 {
		return nil, fmt.Errorf("%w: movie_id must be non-negative", ErrSchemaViolation)
	}
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrSchemaViolation)
	}

	doc := &models.Rating{
		ID:        uuid.New().String(),
		Email:     email,
		MovieID:   movieID,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal rating: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ratingKeyPrefix+doc.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	return doc, nil
}

// AllRatings returns every rating document in the store, across all movies.
func (s *Store) AllRatings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ratingKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var doc models.Rating
				if err := json.Unmarshal(val, &doc); err != nil {
					return fmt.Errorf("unmarshal rating: %w", err)
				}
				ratings = append(ratings, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan ratings: %w", err)
	}
	return ratings, nil
}
