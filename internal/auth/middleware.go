// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package auth

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
)

// Authenticator verifies requests over either credential channel and
// attaches the resulting Identity to the request context.
type Authenticator struct {
	tokens   *JWTManager
	sessions SessionStore
	cookies  *CookieCodec
}

// NewAuthenticator wires the token manager, session store, and cookie
// codec into one middleware provider.
func NewAuthenticator(tokens *JWTManager, sessions SessionStore, cookies *CookieCodec) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, cookies: cookies}
}

// Authenticate admits a request carrying either a valid bearer token or a
// valid session cookie. The bearer channel is checked first: a request
// that presents an Authorization header is judged on that header alone and
// never falls through to the session channel.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("Authorization"); header != "" {
			identity, err := a.fromBearer(header)
			if err != nil {
				metrics.RecordAuthAttempt("token", false)
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Bearer token rejected")
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			metrics.RecordAuthAttempt("token", true)
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
			return
		}

		if session, err := a.SessionFromRequest(r); err == nil {
			metrics.RecordAuthAttempt("session", true)
			identity := &Identity{UserID: session.UserID, Email: session.Email, Provider: "session"}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
			return
		}

		// A presented cookie that did not resolve is a failed session
		// attempt; a request with no credentials at all is not counted.
		if _, err := r.Cookie(SessionCookieName); err == nil {
			metrics.RecordAuthAttempt("session", false)
		}
		writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
	})
}

// fromBearer verifies an Authorization header value and builds the
// identity it asserts.
func (a *Authenticator) fromBearer(header string) (*Identity, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" || tokenString == header {
		return nil, ErrInvalidToken
	}

	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.User.ID, Email: claims.User.Email, Provider: "token"}, nil
}

// SessionFromRequest resolves the request's session cookie to a live
// session. Handlers that require the session channel specifically (not
// just any identity) use this directly.
func (a *Authenticator) SessionFromRequest(r *http.Request) (*Session, error) {
	sessionID, err := a.cookies.Read(r)
	if err != nil {
		return nil, err
	}
	return a.sessions.Get(r.Context(), sessionID)
}

// writeAuthError emits the single-key error envelope without pulling in
// the api package.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.ErrorEnvelope{Error: message}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
