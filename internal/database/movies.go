// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/models"
)

const movieColumns = `movie_id, title, type,
	COALESCE(CAST(release_date AS VARCHAR), ''), COALESCE(rating, 0),
	COALESCE(author, ''), COALESCE(poster, ''), COALESCE(backdrop_poster, '')`

// GroupedMovies returns all movies grouped by category.
func (db *DB) GroupedMovies(ctx context.Context) (map[string][]models.Movie, error) {
	movies, err := db.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY type, movie_id`)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Movie)
	for _, m := range movies {
		grouped[m.Type] = append(grouped[m.Type], m)
	}
	return grouped, nil
}

// MoviesByCategory returns movies of one category, newest release first.
func (db *DB) MoviesByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	return db.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE type = ? ORDER BY release_date DESC`,
		category)
}

// TopRatedMovies returns the ten highest-rated movies.
func (db *DB) TopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	return db.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY rating DESC LIMIT 10`)
}

// SeenMovies returns the movies a viewer has seen, joining the viewer's
// identity against the seen_movies table.
func (db *DB) SeenMovies(ctx context.Context, email string) ([]models.Movie, error) {
	return db.queryMovies(ctx,
		`SELECT M.movie_id, M.title, M.type,
			COALESCE(CAST(M.release_date AS VARCHAR), ''), COALESCE(M.rating, 0),
			COALESCE(M.author, ''), COALESCE(M.poster, ''), COALESCE(M.backdrop_poster, '')
		 FROM seen_movies S JOIN movies M ON S.movie_id = M.movie_id
		 WHERE S.email = ?`,
		NormalizeEmail(email))
}

// UpdateMovieRating writes the recomputed aggregate into a movie row.
// Only the rating aggregator calls this.
func (db *DB) UpdateMovieRating(ctx context.Context, movieID int, rating float64) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET rating = ? WHERE movie_id = ?`, rating, movieID)
	metrics.RecordDBQuery("update", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update movie rating: %w", err)
	}
	return nil
}

// MovieRating reads a movie's current derived rating.
func (db *DB) MovieRating(ctx context.Context, movieID int) (float64, error) {
	start := time.Now()
	var rating float64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(rating, 0) FROM movies WHERE movie_id = ?`, movieID).Scan(&rating)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to query movie rating: %w", err)
	}
	return rating, nil
}

// queryMovies runs a movie projection query and scans the rows.
func (db *DB) queryMovies(ctx context.Context, query string, args ...interface{}) ([]models.Movie, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeQuietly(rows)

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.Type, &m.ReleaseDate,
			&m.Rating, &m.Author, &m.Poster, &m.BackdropPoster); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movie rows: %w", err)
	}
	return movies, nil
}
