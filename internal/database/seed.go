// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package database

import (
	"context"
	"fmt"

	"github.com/marqueeapp/marquee/internal/logging"
)

// SeedMockData seeds the movies table with development data. Intended for
// demos and local development only, behind database.seed_mock_data.
func (db *DB) SeedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count movies: %w", err)
	}
	if count > 0 {
		logging.Debug().Int("movies", count).Msg("Skipping seed, movies table not empty")
		return nil
	}

	movies := []struct {
		id          int
		title       string
		movieType   string
		releaseDate string
		author      string
	}{
		{1, "The Long Night", "Thriller", "2021-03-12", "R. Calloway"},
		{2, "Paper Lanterns", "Drama", "2019-11-02", "M. Okafor"},
		{3, "Orbit Decay", "Science Fiction", "2022-07-29", "J. Linden"},
		{4, "The Last Stand-Up", "Comedy", "2020-01-17", "P. Brandt"},
		{5, "Salt and Smoke", "Drama", "2018-05-25", "A. Ferreira"},
		{6, "Redline", "Action", "2023-02-03", "K. Nakamura"},
		{7, "Glass Harbor", "Thriller", "2021-09-10", "S. Whitfield"},
		{8, "Counting Crows at Dawn", "Documentary", "2017-04-21", "L. Mbeki"},
		{9, "A Fortnight in Lisbon", "Romance", "2022-06-14", "C. Duarte"},
		{10, "Static", "Horror", "2020-10-30", "E. Voss"},
	}

	for _, m := range movies {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO movies(movie_id, title, type, release_date, rating, author)
			 VALUES (?, ?, ?, ?, 0, ?)`,
			m.id, m.title, m.movieType, m.releaseDate, m.author); err != nil {
			return fmt.Errorf("failed to seed movie %d: %w", m.id, err)
		}
	}

	logging.Info().Int("movies", len(movies)).Msg("Seeded mock movie data")
	return nil
}
