// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
	"github.com/marqueeapp/marquee/internal/validation"
)

// AddRating handles POST /ratings/{movieId}. The submission is appended to
// the document store and the movie's aggregate is recomputed. Out-of-bound
// values are caught by the document store schema and surface as a query
// error, not a validation failure.
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieID < 0 {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var req models.AddRatingRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil || identity.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	start := time.Now()
	if _, err := h.aggregator.Submit(r.Context(), identity.Email, movieID, req.Rating); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("movie_id", movieID).Msg("Rating submission failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while adding rating")
		return
	}
	metrics.RecordRatingSubmission(time.Since(start))

	respondMessage(w, http.StatusOK, "Rating added")
}
