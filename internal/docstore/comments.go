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

// commentKey builds a key that groups a movie's comments under one prefix,
// so listing a movie's comments is a single prefix scan.
func commentKey(movieID int, id string) []byte {
	return []byte(fmt.Sprintf("%s%010d:%s", commentKeyPrefix, movieID, id))
}

// NewComment bundles the caller-supplied comment fields.
type NewComment struct {
	MovieID  int
	Username string
	Comment  string
	Title    string
	Rating   float64
}

// InsertComment stores a comment after applying the collection schema:
// username, comment, and title are required, and the display rating is
// bounded 0-5. Upvotes and downvotes default to zero.
func (s *Store) InsertComment(ctx context.Context, nc NewComment) (*models.Comment, error) {
	if nc.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrSchemaViolation)
	}
	if nc.Comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrSchemaViolation)
	}
	if nc.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrSchemaViolation)
	}
	if nc.Rating < 0 || nc.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrSchemaViolation)
	}

	doc := &models.Comment{
		ID:        uuid.New().String(),
		MovieID:   nc.MovieID,
		Username:  nc.Username,
		Comment:   nc.Comment,
		Title:     nc.Title,
		Rating:    nc.Rating,
		Upvotes:   0,
		Downvotes: 0,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal comment: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(commentKey(nc.MovieID, doc.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return doc, nil
}

// CommentsByMovie returns all comments for one movie.
func (s *Store) CommentsByMovie(ctx context.Context, movieID int) ([]models.Comment, error) {
	var comments []models.Comment

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%010d:", commentKeyPrefix, movieID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var doc models.Comment
				if err := json.Unmarshal(val, &doc); err != nil {
					return fmt.Errorf("unmarshal comment: %w", err)
				}
				comments = append(comments, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan comments: %w", err)
	}
	return comments, nil
}
