// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxSanitizedBody bounds how much request body the sanitizer will buffer.
const maxSanitizedBody = 1 << 20 // 1 MiB

// SanitizeBody normalizes JSON request bodies on write endpoints before
// they reach a handler:
//
//   - a top-level "creation_date" field is always set to the current
//     server date (YYYY-MM-DD), regardless of what the client sent, and
//     added when absent
//   - top-level empty-string values become null
//
// The middleware never rejects a request. Bodies that are absent, not JSON
// objects, or oversized pass through untouched and are left for the
// handler's own decoding to judge.
func SanitizeBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
			next.ServeHTTP(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxSanitizedBody+1))
		if err != nil || len(raw) > maxSanitizedBody {
			// Declined to sanitize: replay the consumed bytes ahead of
			// whatever is still unread so the handler sees the full body.
			r.Body = replayBody{io.MultiReader(bytes.NewReader(raw), r.Body), r.Body}
			next.ServeHTTP(w, r)
			return
		}
		_ = r.Body.Close()

		sanitized := sanitizeJSON(raw)
		r.Body = io.NopCloser(bytes.NewReader(sanitized))
		r.ContentLength = int64(len(sanitized))

		next.ServeHTTP(w, r)
	})
}

// replayBody stitches already-read bytes back onto the remainder of the
// original stream, closing the original body when closed.
type replayBody struct {
	io.Reader
	io.Closer
}

// sanitizeJSON applies the top-level rewrites. Anything that fails to
// parse as an object is returned as-is.
func sanitizeJSON(raw []byte) []byte {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return raw
	}

	for key, value := range doc {
		if bytes.Equal(value, []byte(`""`)) {
			doc[key] = json.RawMessage("null")
		}
	}
	today, _ := json.Marshal(time.Now().Format("2006-01-02"))
	doc["creation_date"] = json.RawMessage(today)

	out, err := json.Marshal(doc)
	if err != nil {
		return raw
	}
	return out
}
