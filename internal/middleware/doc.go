// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package middleware provides HTTP instrumentation middleware.

PrometheusMetrics records every request in the api_requests_total counter,
the api_request_duration_seconds histogram and the api_active_requests
gauge. Requests are labeled with method, chi route pattern and status code.

Usage:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Get("/api/v1/games/{id}", handler)

	// GET /api/v1/games/42 is recorded as endpoint="/api/v1/games/{id}"

Requests that match no route are recorded as endpoint="unmatched".
*/
package middleware
