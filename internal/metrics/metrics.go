// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_games_rows",
			Help: "Number of rows in the DuckDB games table",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of dataset loads (fetch, parse, clean) in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source_type"}, // "file", "http"
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"source_type"},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of records in the active catalog",
		},
	)

	DatasetRawRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_raw_rows",
			Help: "Number of rows read from the source before cleaning",
		},
	)

	DatasetExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_records_excluded_total",
			Help: "Total number of records excluded by cleaning",
		},
		[]string{"reason"}, // "outside_window", "nsfw", "few_reviews", ...
	)

	DatasetLastLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_last_load_timestamp_seconds",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "ok", "not_found", "insufficient_data", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation pipeline latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of pipeline fallbacks to a wider candidate pool",
		},
		[]string{"stage"}, // "category", "overlap"
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Market Metrics
	MarketEmptyReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_genre_empty_reports_total",
			Help: "Total number of genre reports where no genre cleared the threshold",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records the duration and outcome of a DuckDB query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDatasetLoad records a finished dataset load. excluded maps a
// cleaning reason to the number of rows it removed.
func RecordDatasetLoad(sourceType string, duration time.Duration, rawRows, records int, excluded map[string]int, err error) {
	DatasetLoadDuration.WithLabelValues(sourceType).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(sourceType).Inc()
		return
	}

	DatasetRawRows.Set(float64(rawRows))
	DatasetRecords.Set(float64(records))
	DatasetLastLoadTimestamp.Set(float64(time.Now().Unix()))
	for reason, n := range excluded {
		if n > 0 {
			DatasetExcluded.WithLabelValues(reason).Add(float64(n))
		}
	}
}

// RecordRecommendation records one pipeline run and the fallbacks it took.
func RecordRecommendation(outcome string, duration time.Duration, categoryFallback, overlapFallback bool) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if categoryFallback {
		RecommendFallbacks.WithLabelValues("category").Inc()
	}
	if overlapFallback {
		RecommendFallbacks.WithLabelValues("overlap").Inc()
	}
}

// RecordRecommendCache records a response cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}
