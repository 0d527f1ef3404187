// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"

	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/models"
)

// Movies handles GET /movies. Without a category parameter the full
// catalog comes back grouped by type; with one, a flat list for that
// category ordered by release date, newest first.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		movies, err := h.db.MoviesByCategory(r.Context(), category)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("category", category).Msg("Category listing failed")
			respondError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
			return
		}
		respondJSON(w, http.StatusOK, models.MovieListResponse{Movies: movies})
		return
	}

	grouped, err := h.db.GroupedMovies(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Grouped listing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
		return
	}
	respondJSON(w, http.StatusOK, models.GroupedMoviesResponse{Movies: grouped})
}

// TopMovies handles GET /movies/top: the ten highest-rated titles.
func (h *Handler) TopMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.db.TopRatedMovies(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Top listing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
		return
	}
	respondJSON(w, http.StatusOK, models.MovieListResponse{Movies: movies})
}

// SeenMovies handles GET /movies/me: the titles the authenticated account
// has marked as seen.
func (h *Handler) SeenMovies(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil || identity.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	movies, err := h.db.SeenMovies(r.Context(), identity.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Seen listing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
		return
	}
	respondJSON(w, http.StatusOK, models.MovieListResponse{Movies: movies})
}
