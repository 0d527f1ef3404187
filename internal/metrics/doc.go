// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments the application with counters, gauges, and
histograms covering:

  - HTTP request latency and throughput per endpoint
  - Relational store (DuckDB) query performance
  - Document store (BadgerDB) collection operations
  - Authentication outcomes per credential channel (token vs session)
  - Rating submission volume and aggregate recomputation latency

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

	import (
	    "github.com/marqueeapp/marquee/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	http.Handle("/metrics", promhttp.Handler())

	metrics.RecordAPIRequest("GET", "/api/movies", "200", duration)
	metrics.RecordDBQuery("select", "movies", duration, err)
	metrics.RecordAuthAttempt("token", true)

Example PromQL queries:

	# HTTP request rate
	rate(api_requests_total[5m])

	# HTTP p95 latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket[5m]))

	# Authentication failure rate per channel
	rate(auth_attempts_total{result="failure"}[5m])

# Thread Safety

All metric recording functions are safe for concurrent use; the Prometheus
client library handles synchronization internally.

# Cardinality Management

Endpoint labels use the route pattern, never the raw URL, and
user-specific labels are avoided.

See Also:

  - internal/middleware: HTTP middleware with metrics integration
  - internal/database: Relational store instrumentation points
*/
package metrics
