// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Phantosirius/steam-dashboard/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(DefaultChiMiddlewareConfig())
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())      // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting (1000/min) so probes are never throttled
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Data Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/dataset", router.handler.Dataset)
		r.Get("/games", router.handler.SearchGames)
		r.Get("/games/{id}", router.handler.GetGame)
		r.Get("/recommendations", router.handler.Recommendations)

		r.Route("/market", func(r chi.Router) {
			r.Get("/overview", router.handler.MarketOverview)
			r.Get("/genres", router.handler.MarketGenres)
			r.Get("/popular", router.handler.MarketPopular)
			r.Get("/prices", router.handler.MarketPrices)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
