// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package models

// Response envelopes. Every response body is a JSON object carrying either
// a "message" key (expected/validation outcomes) or an "error" key
// (unexpected/internal outcomes) - never both, never raw store internals.
//
// Status codes form a closed enumeration:
//
//	success           200
//	badRequest        400
//	unauthorized      401
//	notFound          404
//	userAlreadyExists 409
//	queryError        500

// MessageEnvelope is the envelope for expected outcomes.
//
//	{"message": "User created"}
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope is the envelope for unexpected or credential outcomes.
// Internal error detail is never placed here; handlers log the cause and
// respond with a generic description.
//
//	{"error": "Exception occurred while adding rating"}
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// NotFoundEnvelope is the body of the 404 route fallback.
//
//	{"error": {"message": "Not Found"}}
type NotFoundEnvelope struct {
	Error NotFoundDetail `json:"error"`
}

// NotFoundDetail carries the fallback message.
type NotFoundDetail struct {
	Message string `json:"message"`
}

// LoginResponse is the success body of POST /users/login: the signed bearer
// token (1h expiry) and the account's username.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// MovieListResponse wraps a flat movie list (category and top-rated
// listings).
type MovieListResponse struct {
	Movies []Movie `json:"movies"`
}

// GroupedMoviesResponse wraps the unfiltered movie listing, grouped by
// category.
type GroupedMoviesResponse struct {
	Movies map[string][]Movie `json:"movies"`
}

// CommentListResponse wraps a movie's comments.
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}
