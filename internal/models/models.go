// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

// Package models defines the domain types shared across the application:
// relational entities (users, movies), document entities (ratings, comments,
// messages), request DTOs, and the uniform response envelope.
package models

import "time"

// User is an account record in the relational store. The password field
// holds a bcrypt hash and never leaves the database package.
type User struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	CreationDate time.Time `json:"creation_date"`
}

// Address is the address sub-record written in the same transaction as its
// user row during registration.
type Address struct {
	Email   string `json:"email"`
	Country string `json:"country"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
}

// Movie is a movie record in the relational store. Rating is a derived
// value: the arithmetic mean maintained by the rating aggregator. All other
// fields are read-only from this system's perspective.
type Movie struct {
	MovieID        int     `json:"movie_id"`
	Title          string  `json:"title"`
	Type           string  `json:"type"`
	ReleaseDate    string  `json:"release_date"`
	Rating         float64 `json:"rating"`
	Author         string  `json:"author,omitempty"`
	Poster         string  `json:"poster,omitempty"`
	BackdropPoster string  `json:"backdrop_poster,omitempty"`
}

// Rating is one rating submission in the document store. Ratings are
// append-only: no update or delete path exists. The set of all Rating
// documents is the source of truth for the derived movie average.
type Rating struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	MovieID   int       `json:"movie_id"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a viewer comment on a movie in the document store. Its rating
// field is bounded 0-5 at the store schema and is purely for display; it is
// never folded into the movie's aggregated rating.
type Comment struct {
	ID        string    `json:"_id"`
	MovieID   int       `json:"movie_id"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Title     string    `json:"title"`
	Rating    float64   `json:"rating"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a user-owned document. User holds the owning identity's id
// (the email, which keys identities in this system).
type Message struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
