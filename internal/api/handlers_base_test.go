// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/marqueeapp/marquee/internal/auth"
	"github.com/marqueeapp/marquee/internal/config"
	"github.com/marqueeapp/marquee/internal/database"
	"github.com/marqueeapp/marquee/internal/docstore"
	"github.com/marqueeapp/marquee/internal/rating"
)

// testEnv is an in-memory instance of the full HTTP surface.
type testEnv struct {
	handler *Handler
	router  http.Handler
	db      *database.DB
	docs    *docstore.Store
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			SessionSecret:     "fedcba9876543210fedcba9876543210",
			SessionTimeout:    time.Hour,
			SessionStore:      "memory",
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
	}
	for _, m := range mutate {
		m(cfg)
	}

	db, err := database.New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "256MB",
		Threads:      1,
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	docs, err := docstore.Open(&config.DocStoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("docstore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = docs.Close() })

	tokens := auth.NewJWTManager(cfg.Security.JWTSecret)
	sessions := auth.NewMemorySessionStore(cfg.Security.SessionTimeout)
	cookies := auth.NewCookieCodec(cfg.Security.SessionSecret, cfg.Security.SessionTimeout)
	authenticator := auth.NewAuthenticator(tokens, sessions, cookies)
	aggregator := rating.NewAggregator(db, docs)

	handler := NewHandler(cfg, db, docs, aggregator, tokens, sessions, cookies, authenticator)
	return &testEnv{
		handler: handler,
		router:  handler.Routes(),
		db:      db,
		docs:    docs,
	}
}

// do executes a request against the router.
func (env *testEnv) do(t *testing.T, method, target, body string, decorate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, d := range decorate {
		d(req)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account directly through the endpoint.
func (env *testEnv) register(t *testing.T, email, username, password string) {
	t.Helper()

	body := `{"email":"` + email + `","username":"` + username + `","password":"` + password + `","country":"FR"}`
	rec := env.do(t, http.MethodPost, "/users/register", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

// login returns the bearer token and the session cookies from a login.
func (env *testEnv) login(t *testing.T, email, password string) (string, []*http.Cookie) {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	rec := env.do(t, http.MethodPost, "/users/login", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in login response")
	}
	return resp.Token, rec.Result().Cookies()
}

// withToken decorates a request with a bearer token.
func withToken(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// withCookies decorates a request with session cookies.
func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

// decodeEnvelope decodes a single-key message/error envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if len(body) != 1 {
		t.Errorf("envelope must carry exactly one key, got %v", body)
	}
	return body
}

// insertMovie seeds one movie row.
func (env *testEnv) insertMovie(t *testing.T, id int, title, movieType, releaseDate string, ratingValue float64) {
	t.Helper()
	_, err := env.db.Conn().Exec(
		`INSERT INTO movies (movie_id, title, type, release_date, rating) VALUES (?, ?, ?, ?, ?)`,
		id, title, movieType, releaseDate, ratingValue,
	)
	if err != nil {
		t.Fatalf("insert movie: %v", err)
	}
}
