// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
	"github.com/marqueeapp/marquee/internal/validation"
)

// The messages routes return message documents raw, without the
// message/error envelope. That asymmetry is part of the published contract
// and is kept.

// Messages handles GET /messages.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.docs.Messages(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Message listing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching messages")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	metrics.RecordDocStoreOperation("messages", "scan")
	respondJSON(w, http.StatusOK, messages)
}

// Message handles GET /messages/{messageId}.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.MessageByID(r.Context(), chi.URLParam(r, "messageId"))
	if errors.Is(err, docstore.ErrMessageNotFound) {
		respondError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Message lookup failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while fetching message")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// AddMessage handles POST /messages. This endpoint requires the session
// channel specifically: a bearer token passes the route's authentication
// middleware, but the handler resolves the owner from the session and
// refuses when no live session accompanies the request.
func (h *Handler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req models.AddMessageRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing information")
		return
	}
	if err := validation.ValidateStruct(&req.Message); err != nil {
		respondError(w, http.StatusBadRequest, "Missing information")
		return
	}

	session, err := h.auth.SessionFromRequest(r)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "You are not authenticated")
		return
	}

	doc, err := h.docs.InsertMessage(r.Context(), req.Message.Name, session.UserID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Message insert failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while adding message")
		return
	}
	metrics.RecordDocStoreOperation("messages", "insert")
	respondJSON(w, http.StatusOK, doc)
}

// EditMessage handles PUT /messages/{messageId}. Any authenticated caller
// may rename any message; ownership is not checked.
func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req models.EditMessageRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing information")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing information")
		return
	}

	doc, err := h.docs.UpdateMessage(r.Context(), chi.URLParam(r, "messageId"), req.Name)
	if errors.Is(err, docstore.ErrMessageNotFound) {
		respondError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Message update failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while updating message")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// DeleteMessage handles DELETE /messages/{messageId}. Deleting an absent
// message still reports success.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.DeleteMessage(r.Context(), chi.URLParam(r, "messageId")); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Message deletion failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while deleting message")
		return
	}
	metrics.RecordDocStoreOperation("messages", "delete")
	respondMessage(w, http.StatusOK, "Message deleted")
}
