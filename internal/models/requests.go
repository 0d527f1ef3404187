// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package models

// Typed request DTOs, one per endpoint. Handlers decode the (sanitized)
// body into these and validate them before touching any store.

// RegisterRequest is the body of POST /users/register.
// City, street, and creation date are optional; the sanitizer middleware
// overwrites creation_date with the server date regardless of input.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Country      string `json:"country" validate:"required"`
	City         string `json:"city"`
	Street       string `json:"street"`
	CreationDate string `json:"creation_date"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EditPasswordRequest is the body of PUT /profile.
type EditPasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// AddRatingRequest is the body of POST /ratings/{movieId}.
// A zero rating is treated the same as an absent one: neither ever
// reaches the aggregator.
type AddRatingRequest struct {
	Rating float64 `json:"rating" validate:"required"`
}

// AddCommentRequest is the body of POST /comments/{movie_id}.
// The 0-5 bound on Rating is deliberately NOT enforced here: the document
// store schema owns that check, and violations surface as a store failure.
type AddCommentRequest struct {
	Rating   *float64 `json:"rating" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Comment  string   `json:"comment" validate:"required"`
	Title    string   `json:"title" validate:"required"`
}

// AddMessageRequest is the body of POST /messages. The payload is nested
// under a "message" key.
type AddMessageRequest struct {
	Message MessagePayload `json:"message"`
}

// MessagePayload carries the user-supplied message fields.
type MessagePayload struct {
	Name string `json:"name" validate:"required"`
}

// EditMessageRequest is the body of PUT /messages/{messageId}.
type EditMessageRequest struct {
	Name string `json:"name" validate:"required"`
}
