// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package api provides the HTTP API of Steam Dashboard using the Chi router.

All data endpoints are read-only GETs under /api/v1 and answer with the
APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "catalog_version": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}}

# Endpoints

	GET /api/v1/health/live          liveness
	GET /api/v1/health/ready         503 until a catalog is loaded
	GET /api/v1/dataset              source, load time, cleaning stats
	GET /api/v1/games?q=&limit=      name search
	GET /api/v1/games/{id}           one game
	GET /api/v1/recommendations?name=
	GET /api/v1/market/overview
	GET /api/v1/market/genres?min_games=
	GET /api/v1/market/popular?limit=
	GET /api/v1/market/prices
	GET /metrics                     Prometheus exposition

# Error Codes

	VALIDATION_FAILED    400  query parameter rejected
	NOT_FOUND            404  unknown game or route
	INSUFFICIENT_DATA    422  nothing to compare against
	TOO_MANY_REQUESTS    429  rate limit exceeded
	SERVICE_UNAVAILABLE  503  dataset or price store not loaded yet

# Middleware

Every request gets a request ID (X-Request-ID), real IP extraction, panic
recovery and CORS. Data endpoints add per-IP rate limiting through httprate,
security headers and Prometheus request metrics labeled by route pattern.

# Caching

Market reports are cached in an LRU keyed by catalog version and query
parameters, so a dataset reload is picked up on the next request.
*/
package api
