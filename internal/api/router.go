// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/config"
	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/metrics"
	"github.com/marqueeapp/marquee/internal/middleware"
	"github.com/marqueeapp/marquee/internal/models"
	"github.com/marqueeapp/marquee/internal/rating"
)

// Handler carries the dependencies shared by all route handlers.
type Handler struct {
	cfg        *config.Config
	db         *database.DB
	docs       *docstore.Store
	aggregator *rating.Aggregator
	tokens     *auth.JWTManager
	sessions   auth.SessionStore
	cookies    *auth.CookieCodec
	auth       *auth.Authenticator
}

// NewHandler wires the stores and authentication components into one
// handler set.
func NewHandler(
	cfg *config.Config,
	db *database.DB,
	docs *docstore.Store,
	aggregator *rating.Aggregator,
	tokens *auth.JWTManager,
	sessions auth.SessionStore,
	cookies *auth.CookieCodec,
	authenticator *auth.Authenticator,
) *Handler {
	return &Handler{
		cfg:        cfg,
		db:         db,
		docs:       docs,
		aggregator: aggregator,
		tokens:     tokens,
		sessions:   sessions,
		cookies:    cookies,
		auth:       authenticator,
	}
}

// Routes builds the full route tree.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Compression)
	r.Use(middleware.SanitizeBody)

	r.Get("/api/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Account endpoints: rate limited to slow brute force attempts.
	r.Route("/users", func(r chi.Router) {
		if !h.cfg.Security.RateLimitDisabled {
			r.Use(httprate.Limit(
				h.cfg.Security.RateLimitReqs,
				h.cfg.Security.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
					respondError(w, http.StatusTooManyRequests, "Too many requests")
				}),
			))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	// Protected endpoints: either credential channel admits.
	r.Group(func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(h.auth.Authenticate)

		r.Route("/profile", func(r chi.Router) {
			r.Put("/", h.EditPassword)
			r.Post("/", h.Logout)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.Movies)
			r.Get("/top", h.TopMovies)
			r.Get("/me", h.SeenMovies)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Post("/{movieId}", h.AddRating)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{movieId}", h.Comments)
			r.Post("/{movieId}", h.AddComment)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.Messages)
			r.Post("/", h.AddMessage)
			r.Get("/{messageId}", h.Message)
			r.Put("/{messageId}", h.EditMessage)
			r.Delete("/{messageId}", h.DeleteMessage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, models.NotFoundEnvelope{
			Error: models.NotFoundDetail{Message: "Not Found"},
		})
	})

	return r
}
