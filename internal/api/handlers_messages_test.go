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

// postMessage creates a message over the session channel and returns it.
func postMessage(t *testing.T, env *testEnv, cookies []*http.Cookie, name string) models.Message {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/messages", `{"message":{"name":"`+name+`"}}`, withCookies(cookies))
	if rec.Code != http.StatusOK {
		t.Fatalf("post message status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var doc models.Message
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return doc
}

func TestAddMessage(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, cookies := env.login(t, "a@example.com", "secret")

	t.Run("session channel creates the document", func(t *testing.T) {
		doc := postMessage(t, env, cookies, "hello")
		if doc.ID == "" {
			t.Error("expected generated id")
		}
		if doc.User != "a@example.com" {
			t.Errorf("owner = %q, want a@example.com", doc.User)
		}
	})

	// A bearer token passes the route's authentication but the handler
	// resolves the owner from the session, which is absent.
	t.Run("token-only request is refused", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/messages", `{"message":{"name":"hello"}}`, withToken(token))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if got := decodeEnvelope(t, rec)["error"]; got != "You are not authenticated" {
			t.Errorf("error = %q, want You are not authenticated", got)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/messages", `{"message":{}}`, withCookies(cookies))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeEnvelope(t, rec)["error"]; got != "Missing information" {
			t.Errorf("error = %q, want Missing information", got)
		}
	})
}

func TestMessagesList(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, cookies := env.login(t, "a@example.com", "secret")

	t.Run("empty list is a raw array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/messages", "", withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Body.String(); got != "[]\n" && got != "[]" {
			t.Errorf("body = %s, want []", got)
		}
	})

	postMessage(t, env, cookies, "first")
	postMessage(t, env, cookies, "second")

	t.Run("documents come back raw", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/messages", "", withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var docs []models.Message
		if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
			t.Fatalf("decode messages: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("got %d messages, want 2", len(docs))
		}
	})
}

func TestMessageByID(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, cookies := env.login(t, "a@example.com", "secret")
	created := postMessage(t, env, cookies, "hello")

	t.Run("found", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/messages/"+created.ID, "", withToken(token))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var doc models.Message
		if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		if doc.Name != "hello" {
			t.Errorf("name = %q, want hello", doc.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/messages/missing", "", withToken(token))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if got := decodeEnvelope(t, rec)["error"]; got != "Message not found" {
			t.Errorf("error = %q, want Message not found", got)
		}
	})
}

func TestEditMessage(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	_, aliceCookies := env.login(t, "a@example.com", "secret")
	created := postMessage(t, env, aliceCookies, "hello")

	env.register(t, "b@example.com", "bob", "secret")
	bobToken, _ := env.login(t, "b@example.com", "secret")

	// Any authenticated caller may edit any message; ownership is not
	// checked.
	t.Run("non-owner edit succeeds", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/messages/"+created.ID, `{"name":"renamed"}`, withToken(bobToken))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var doc models.Message
		if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		if doc.Name != "renamed" {
			t.Errorf("name = %q, want renamed", doc.Name)
		}
		if doc.User != "a@example.com" {
			t.Errorf("owner = %q, should be unchanged", doc.User)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/messages/"+created.ID, `{}`, withToken(bobToken))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeEnvelope(t, rec)["error"]; got != "Missing information" {
			t.Errorf("error = %q, want Missing information", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/messages/missing", `{"name":"x"}`, withToken(bobToken))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@example.com", "alice", "secret")
	token, cookies := env.login(t, "a@example.com", "secret")
	created := postMessage(t, env, cookies, "hello")

	rec := env.do(t, http.MethodDelete, "/messages/"+created.ID, "", withToken(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeEnvelope(t, rec)["message"]; got != "Message deleted" {
		t.Errorf("message = %q, want Message deleted", got)
	}

	// Deleting an absent message still reports success.
	rec = env.do(t, http.MethodDelete, "/messages/"+created.ID, "", withToken(token))
	if rec.Code != http.StatusOK {
		t.Errorf("repeat delete status = %d, want 200", rec.Code)
	}
}
