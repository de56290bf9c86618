// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry with promauto and exposed
at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type (truncated to 50 characters)
  - duckdb_games_rows: Rows in the games table (gauge)

Dataset Metrics:
  - dataset_load_duration_seconds: Fetch, parse and clean time (histogram)
    Labels: source_type (file, http)
  - dataset_load_errors_total: Failed loads (counter)
  - dataset_records, dataset_raw_rows: Catalog size before and after cleaning (gauges)
  - dataset_records_excluded_total: Rows removed by cleaning (counter)
    Labels: reason
  - dataset_last_load_timestamp_seconds: Last successful load (gauge)

Recommendation Metrics:
  - recommend_requests_total: Pipeline runs (counter)
    Labels: outcome (ok, not_found, insufficient_data, error)
  - recommend_duration_seconds: Pipeline latency (histogram)
  - recommend_fallbacks_total: Fallbacks to a wider pool (counter)
    Labels: stage (category, overlap)
  - recommend_cache_hits_total, recommend_cache_misses_total (counters)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_requests_total: Calls through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

# Example PromQL Queries

Recommendation p95 latency:

	histogram_quantile(0.95, rate(recommend_duration_seconds_bucket[5m]))

Share of recommendation requests that fell back from category narrowing:

	rate(recommend_fallbacks_total{stage="category"}[1h]) / rate(recommend_requests_total[1h])

Remote dataset source health:

	circuit_breaker_state{name="dataset-fetch"}
*/
package metrics
