// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/models"
)

// respondJSON writes a JSON payload with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondMessage writes a {"message": ...} envelope.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.MessageEnvelope{Message: message})
}

// respondError writes an {"error": ...} envelope. The caller logs the
// underlying cause; only the generic description goes to the client.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorEnvelope{Error: message})
}

// decodeBody decodes a JSON request body into dst. The body has already
// passed through the sanitizer middleware.
func decodeBody(r *http.Request, dst interface{}) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}
