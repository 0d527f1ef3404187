// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/marqueeapp/marquee/internal/models"
)

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, _ := env.login(t, "a@example.com", "secret")

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantKey    string
		wantText   string
	}{
		{
			name:       "valid comment",
			target:     "/comments/1",
			body:       `{"rating":5,"username":"alice","comment":"great","title":"loved it"}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantText:   "Comment added",
		},
		{
			// Unlike movie ratings, a zero display rating is a valid value.
			name:       "zero rating accepted",
			target:     "/comments/1",
			body:       `{"rating":0,"username":"alice","comment":"meh","title":"flat"}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantText:   "Comment added",
		},
		{
			name:       "missing fields",
			target:     "/comments/1",
			body:       `{"rating":5,"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "message",
			wantText:   "Missing parameters",
		},
		{
			name:       "non-numeric movie id",
			target:     "/comments/abc",
			body:       `{"rating":5,"username":"alice","comment":"great","title":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "message",
			wantText:   "Missing parameters",
		},
		{
			// The 0-5 bound lives in the document store schema, so the
			// violation is reported as a query error.
			name:       "rating above schema bound",
			target:     "/comments/1",
			body:       `{"rating":6,"username":"alice","comment":"great","title":"x"}`,
			wantStatus: http.StatusInternalServerError,
			wantKey:    "error",
			wantText:   "Exception occurred while adding comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.target, tt.body, withToken(token))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := decodeEnvelope(t, rec)[tt.wantKey]; got != tt.wantText {
				t.Errorf("%s = %q, want %q", tt.wantKey, got, tt.wantText)
			}
		})
	}
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, _ := env.login(t, "a@example.com", "secret")

	for _, target := range []string{"/comments/1", "/comments/1", "/comments/2"} {
		rec := env.do(t, http.MethodPost, target,
			`{"rating":3,"username":"alice","comment":"c","title":"t"}`, withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("seed comment status = %d", rec.Code)
		}
	}

	t.Run("scoped to movie", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/comments/1", "", withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp struct {
			Comments []models.Comment `json:"comments"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Comments) != 2 {
			t.Errorf("got %d comments, want 2", len(resp.Comments))
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/comments/99", "", withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		want := `{"comments":[]}`
		if got := rec.Body.String(); got != want+"\n" && got != want {
			t.Errorf("body = %s, want %s", got, want)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/comments/abc", "", withToken(token))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeEnvelope(t, rec)["message"]; got != "Movie ID missing" {
			t.Errorf("message = %q, want Movie ID missing", got)
		}
	})
}
