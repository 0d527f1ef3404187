// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed bearer token lifetime. It is not configurable:
// tokens always expire one hour after issuance.
const TokenTTL = time.Hour

// Token errors.
var (
	// ErrInvalidToken indicates a token that failed signature, structure,
	// or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
)

// IdentityClaims is the principal payload embedded in the token. The id is
// the account email, mirroring how users are keyed in the relational store.
type IdentityClaims struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Claims is the full JWT claim set: the identity under "user" plus the
// registered claims carrying the expiry.
type Claims struct {
	User IdentityClaims `json:"user"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HMAC-signed bearer tokens.
type JWTManager struct {
	secret []byte
}

// NewJWTManager creates a token manager with the given signing secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

// Issue creates a signed token for the given account, expiring TokenTTL
// from now.
func (m *JWTManager) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		User: IdentityClaims{ID: email, Email: email},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
// Any failure (bad signature, wrong algorithm, expired, malformed) is
// reported as ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but the expected HMAC method.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.User.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
