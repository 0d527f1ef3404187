// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "marquee_session"

// CookieCodec signs session ids into tamper-evident cookie values. The
// cookie carries only the opaque session id; all session state lives
// server-side.
type CookieCodec struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
}

// NewCookieCodec creates a cookie codec keyed with the session secret.
func NewCookieCodec(secret string, maxAge time.Duration) *CookieCodec {
	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(int(maxAge.Seconds()))
	return &CookieCodec{codec: sc, maxAge: maxAge}
}

// Write sets the session cookie on the response.
func (c *CookieCodec) Write(w http.ResponseWriter, sessionID string) error {
	encoded, err := c.codec.Encode(SessionCookieName, sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts and verifies the session id from the request cookie. A
// missing or invalid cookie returns an error.
func (c *CookieCodec) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	var sessionID string
	if err := c.codec.Decode(SessionCookieName, cookie.Value, &sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Clear expires the session cookie on the response.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
