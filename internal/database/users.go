// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
)

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser bundles the fields needed to register an account.
type NewUser struct {
	Email        string
	Username     string
	Password     string // plaintext, hashed before storage
	Country      string
	Street       string
	City         string
	CreationDate time.Time
}

// FindByEmail returns the user record for an email, or ErrUserNotFound.
func (db *DB) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	var queryErr error
	defer func() { metrics.RecordDBQuery("select", "users", time.Since(start), queryErr) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT email, username, COALESCE(creation_date, DATE '1970-01-01') FROM users WHERE email = ?`,
		NormalizeEmail(email))

	var user models.User
	if err := row.Scan(&user.Email, &user.Username, &user.CreationDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		queryErr = err
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// CreateUser registers an account. The user row and its address sub-record
// are written in one transaction: both succeed or both roll back, so a
// partial registration is never observable. A duplicate email returns
// ErrDuplicateEmail without writing anything.
func (db *DB) CreateUser(ctx context.Context, nu NewUser) (err error) {
	email := NormalizeEmail(nu.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	start := time.Now()
	defer func() {
		// A duplicate email is a rejected registration, not a store failure.
		if errors.Is(err, ErrDuplicateEmail) {
			metrics.RecordDBQuery("insert", "users", time.Since(start), nil)
			return
		}
		metrics.RecordDBQuery("insert", "users", time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users(email, username, password, creation_date) VALUES (?, ?, ?, ?)`,
		email, nu.Username, string(hash), nu.CreationDate)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		logging.Ctx(ctx).Info().Int64("rows", n).Msg("User added")
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO addresses(email, country, street, city) VALUES (?, ?, ?, ?)`,
		email, nu.Country, nu.Street, nu.City)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		logging.Ctx(ctx).Info().Int64("rows", n).Msg("Address added")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// VerifyPassword checks a candidate password against the stored hash. The
// comparison happens here so hashes never leave the store. Returns the
// matching user on success, ErrUserNotFound when the email is unknown or
// the password does not match.
func (db *DB) VerifyPassword(ctx context.Context, email, candidate string) (*models.User, error) {
	start := time.Now()
	var queryErr error
	defer func() { metrics.RecordDBQuery("select", "users", time.Since(start), queryErr) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT email, username, password, COALESCE(creation_date, DATE '1970-01-01') FROM users WHERE email = ?`,
		NormalizeEmail(email))

	var (
		user models.User
		hash string
	)
	if err := row.Scan(&user.Email, &user.Username, &hash, &user.CreationDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		queryErr = err
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)); err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdatePassword replaces a user's password hash after verifying the old
// password store-side. Returns ErrUserNotFound when the old password does
// not match.
func (db *DB) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if _, err := db.VerifyPassword(ctx, email, oldPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE email = ?`,
		string(hash), NormalizeEmail(email))
	metrics.RecordDBQuery("update", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// rollbackQuietly rolls back a transaction, ignoring the error returned
// after a successful commit.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}
