// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
	"github.com/marqueeapp/marquee/internal/validation"
)

// Comments handles GET /comments/{movieId}.
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Movie ID missing")
		return
	}

	comments, err := h.docs.CommentsByMovie(r.Context(), movieID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("movie_id", movieID).Msg("Comment listing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	metrics.RecordDocStoreOperation("comments", "scan")
	respondJSON(w, http.StatusOK, models.CommentListResponse{Comments: comments})
}

// AddComment handles POST /comments/{movieId}. The display rating's 0-5
// bound is enforced by the document store schema; a violation surfaces as
// a query error.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var req models.AddCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	_, err = h.docs.InsertComment(r.Context(), docstore.NewComment{
		MovieID:  movieID,
		Username: req.Username,
		Comment:  req.Comment,
		Title:    req.Title,
		Rating:   *req.Rating,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("movie_id", movieID).Msg("Comment insert failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while adding comment")
		return
	}
	metrics.RecordDocStoreOperation("comments", "insert")
	respondMessage(w, http.StatusOK, "Comment added")
}
