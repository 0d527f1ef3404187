// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/logging"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
	"github.com/marqueeapp/marquee/internal/validation"
)

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "All up and running !!")
}

// Register handles POST /users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	// The sanitizer stamps creation_date with the server date; fall back to
	// now if a handler is reached without it.
	creationDate, err := time.Parse("2006-01-02", req.CreationDate)
	if err != nil {
		creationDate = time.Now()
	}

	err = h.db.CreateUser(r.Context(), database.NewUser{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Country:      req.Country,
		Street:       req.Street,
		City:         req.City,
		CreationDate: creationDate,
	})
	switch {
	case errors.Is(err, database.ErrDuplicateEmail):
		respondMessage(w, http.StatusConflict, "User already has an account")
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Registration failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while registering")
	default:
		respondMessage(w, http.StatusOK, "User created")
	}
}

// Login handles POST /users/login. A successful login establishes both
// credential channels at once: a session cookie and a signed bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	user, err := h.db.VerifyPassword(r.Context(), req.Email, req.Password)
	if errors.Is(err, database.ErrUserNotFound) {
		// Unknown email and wrong password are indistinguishable.
		respondMessage(w, http.StatusNotFound, "Incorrect email/password")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login query failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}

	session, err := h.sessions.Create(r.Context(), user.Email, user.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Session creation failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}
	if err := h.cookies.Write(w, session.ID); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Session cookie encoding failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token signing failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}

	metrics.SessionsCreated.Inc()
	logging.Ctx(r.Context()).Info().Str("email", user.Email).Msg("User logged in")
	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, Username: user.Username})
}

// Logout handles POST /profile. Only the session channel is revocable: an
// already-issued bearer token stays valid until its expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, err := h.auth.SessionFromRequest(r); err == nil {
		if err := h.sessions.Delete(r.Context(), session.ID); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Session deletion failed")
		} else {
			metrics.SessionsRevoked.Inc()
		}
	}
	h.cookies.Clear(w)
	respondMessage(w, http.StatusOK, "Disconnected")
}

// EditPassword handles PUT /profile.
func (h *Handler) EditPassword(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil || identity.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var req models.EditPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if req.OldPassword == req.NewPassword {
		respondMessage(w, http.StatusBadRequest, "New password cannot be equal to old password")
		return
	}

	err := h.db.UpdatePassword(r.Context(), identity.Email, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		respondMessage(w, http.StatusBadRequest, "Incorrect password")
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password update failed")
		respondError(w, http.StatusInternalServerError, "Exception occurred while updating password")
	default:
		respondMessage(w, http.StatusOK, "Password updated")
	}
}
