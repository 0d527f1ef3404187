// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/marqueeapp/marquee/internal/models"
)

// InsertMessage stores a new message owned by the given user id.
func (s *Store) InsertMessage(ctx context.Context, name, userID string) (*models.Message, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrSchemaViolation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrSchemaViolation)
	}

	now := time.Now().UTC()
	doc := &models.Message{
		ID:        uuid.New().String(),
		Name:      name,
		User:      userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(messageKeyPrefix+doc.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return doc, nil
}

// Messages returns every message document.
func (s *Store) Messages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(messageKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var doc models.Message
				if err := json.Unmarshal(val, &doc); err != nil {
					return fmt.Errorf("unmarshal message: %w", err)
				}
				messages = append(messages, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return messages, nil
}

// MessageByID returns one message, or ErrMessageNotFound.
func (s *Store) MessageByID(ctx context.Context, id string) (*models.Message, error) {
	var doc models.Message

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(messageKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMessageNotFound
		}
		if err != nil {
			return fmt.Errorf("get message: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateMessage renames a message and returns the updated document, or
// ErrMessageNotFound. Ownership is NOT checked here; see the handler-level
// authorization note in DESIGN.md.
func (s *Store) UpdateMessage(ctx context.Context, id, name string) (*models.Message, error) {
	doc, err := s.MessageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Name = name
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(messageKeyPrefix+id), data)
	})
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	return doc, nil
}

// DeleteMessage removes a message. Deleting an absent message is not an
// error.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(messageKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
