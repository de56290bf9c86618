// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/cache"
	"github.com/Phantosirius/steam-dashboard/internal/config"
	"github.com/Phantosirius/steam-dashboard/internal/database"
	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/recommend"
)

// Market report cache settings. Keys include the catalog version so a
// reload never serves stale reports.
const (
	reportCacheEntries = 256
	reportCacheTTL     = 10 * time.Minute
)

// CatalogSource provides the most recently loaded catalog.
type CatalogSource interface {
	Current() (*games.Catalog, error)
}

// Recommender produces recommendations for a reference game.
type Recommender interface {
	Recommend(ctx context.Context, catalog *games.Catalog, req recommend.Request) (*recommend.Response, error)
}

// PriceStore answers the SQL-backed price analytics.
type PriceStore interface {
	PriceDistribution(ctx context.Context) (*database.PriceDistribution, error)
	MedianPriceByYear(ctx context.Context) (*database.YearlyPrices, error)
	PriceHistogram(ctx context.Context, bucketWidth, maxPrice float64) (*database.PriceHistogram, error)
	LoadedVersion() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared helpers
//   - handlers_health.go: liveness and readiness
//   - handlers_games.go: dataset summary, search and lookup
//   - handlers_recommend.go: recommendations
//   - handlers_market.go: market analytics
type Handler struct {
	catalogs  CatalogSource
	engine    Recommender
	store     PriceStore // optional
	config    *config.Config
	logger    zerolog.Logger
	startTime time.Time
	reports   *cache.LRU[any]
}

// NewHandler creates a new API handler. store may be nil, in which case the
// price endpoint answers 503.
//
// Example:
//
//	handler := api.NewHandler(loader, engine, db, cfg, logger)
//	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(catalogs CatalogSource, engine Recommender, store PriceStore, cfg *config.Config, logger zerolog.Logger) *Handler {
	h := &Handler{
		catalogs:  catalogs,
		engine:    engine,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
		reports:   cache.NewLRU[any](reportCacheEntries, reportCacheTTL),
	}
	// A nil *database.DB stored in the interface would not compare equal to nil.
	if store != nil {
		if db, ok := store.(*database.DB); !ok || db != nil {
			h.store = store
		}
	}
	return h
}

// ClearCache drops every cached market report.
func (h *Handler) ClearCache() {
	h.reports.Purge()
}

// CleanupCache drops expired market reports and returns how many were
// removed.
func (h *Handler) CleanupCache() int {
	return h.reports.CleanupExpired()
}

// cachedReport returns the report stored under key, computing and storing it
// on a miss.
func (h *Handler) cachedReport(key string, compute func() any) any {
	if v, ok := h.reports.Get(key); ok {
		return v
	}
	v := compute()
	h.reports.Add(key, v)
	return v
}
