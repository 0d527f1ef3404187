// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

/*
Package middleware provides HTTP middleware components for the application.

These components complement chi's built-in middleware and the
authentication middleware in internal/auth to form the full request
pipeline:

  - RequestID: UUID-based request tracking wired into structured logging
  - AccessLog: one zerolog line per completed request
  - PrometheusMetrics: request count, latency, and in-flight instrumentation
  - Compression: gzip for clients that accept it
  - SanitizeBody: JSON body normalization on write endpoints

The sanitizer is deliberately lenient: it rewrites what it understands
(server-owned creation_date, top-level empty strings) and passes
everything else through for the handler's decoder to judge. It never
produces an error response on its own.

All components are thread-safe and compose through the standard
func(http.Handler) http.Handler shape, so they mount directly with
chi's Router.Use.
*/
package middleware
