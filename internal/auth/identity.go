// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package auth provides the two authentication channels of the system: a
// signed bearer token with a fixed one-hour expiry and a server-side
// session addressed by an opaque cookie id. Either channel is sufficient
// to authenticate a request; handlers only ever see the Identity
// abstraction and cannot tell which channel produced it.
package auth

import "context"

type contextKey string

// identityContextKey is the context key for the authenticated identity.
const identityContextKey contextKey = "identity"

// Identity is the authenticated principal attached to a request after a
// successful session or token verification. Identities are keyed by email.
type Identity struct {
	// UserID is the principal's id. Identities are email-keyed in this
	// system, so this equals Email.
	UserID string

	// Email is the account email.
	Email string

	// Provider records which channel authenticated the request:
	// "token" or "session".
	Provider string
}

// ContextWithIdentity attaches an identity to the context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the authenticated identity, or nil when the
// request did not pass authentication middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityContextKey).(*Identity); ok {
		return identity
	}
	return nil
}
