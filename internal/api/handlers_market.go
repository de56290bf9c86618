// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"fmt"
	"net/http"

	"github.com/Phantosirius/steam-dashboard/internal/database"
	"github.com/Phantosirius/steam-dashboard/internal/market"
	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// PriceReport combines the SQL price analytics.
type PriceReport struct {
	// Version is the catalog version the price store was populated from.
	Version      string                      `json:"version"`
	Distribution *database.PriceDistribution `json:"distribution"`
	Yearly       *database.YearlyPrices      `json:"yearly"`
	Histogram    *database.PriceHistogram    `json:"histogram"`
}

// MarketOverview returns market totals and the yearly release trend.
//
// @Summary Market overview
// @Tags Market
// @Produce json
// @Success 200 {object} APIResponse{data=market.OverviewReport}
// @Router /market/overview [get]
func (h *Handler) MarketOverview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	key := catalog.Version() + "|overview"
	report := h.cachedReport(key, func() any {
		return market.Overview(catalog.Records, catalog.Window)
	})
	rw.SuccessWithMeta(report, catalogMeta(catalog, nil))
}

// MarketGenres returns the genre table, quadrants and rankings.
//
// A min_games outside the configured floor and ceiling is rejected. When no
// genre reaches the threshold the report is empty and carries the
// threshold used.
//
// @Summary Genre growth and quality
// @Tags Market
// @Produce json
// @Param min_games query int false "Minimum games per genre"
// @Success 200 {object} APIResponse{data=market.GenreReport}
// @Failure 400 {object} APIResponse "min_games out of range"
// @Router /market/genres [get]
func (h *Handler) MarketGenres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	m := h.config.Market

	minGames, ok := parseIntQuery(rw, r, "min_games", m.DefaultMinGames)
	if !ok {
		return
	}
	req := GenreRequest{MinGames: minGames}
	if !validateRequest(rw, &req) {
		return
	}
	if req.MinGames < m.MinGamesFloor || req.MinGames > m.MinGamesCeiling {
		rw.ValidationError(
			fmt.Sprintf("min_games must be between %d and %d", m.MinGamesFloor, m.MinGamesCeiling),
			map[string]any{
				"field": "min_games",
				"value": req.MinGames,
				"min":   m.MinGamesFloor,
				"max":   m.MinGamesCeiling,
			},
		)
		return
	}

	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	key := fmt.Sprintf("%s|genres|%d", catalog.Version(), req.MinGames)
	report := h.cachedReport(key, func() any {
		report := market.GenreTable(catalog.Records, market.Options{
			MinGames:          req.MinGames,
			Window:            catalog.Window,
			QualityMinReviews: m.QualityMinReviews,
			TopN:              m.TopN,
		})
		if report.Empty {
			metrics.MarketEmptyReports.Inc()
		}
		return report
	})
	rw.SuccessWithMeta(report, catalogMeta(catalog, nil))
}

// MarketPopular returns the most reviewed games and the popularity scatter.
//
// @Summary Popular games
// @Tags Market
// @Produce json
// @Param limit query int false "Top list length (1-100)"
// @Success 200 {object} APIResponse{data=market.PopularReport}
// @Router /market/popular [get]
func (h *Handler) MarketPopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	m := h.config.Market

	limit, ok := parseIntQuery(rw, r, "limit", m.PopularLimit)
	if !ok {
		return
	}
	req := PopularRequest{Limit: limit}
	if !validateRequest(rw, &req) {
		return
	}

	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	key := fmt.Sprintf("%s|popular|%d", catalog.Version(), req.Limit)
	report := h.cachedReport(key, func() any {
		return market.Popular(catalog.Records, market.PopularOptions{
			Limit:             req.Limit,
			ScatterMinReviews: m.ScatterMinReviews,
		})
	})
	rw.SuccessWithMeta(report, catalogMeta(catalog, nil))
}

// MarketPrices returns the price distribution, yearly medians and histogram
// computed by the SQL store.
//
// @Summary Price analytics
// @Tags Market
// @Produce json
// @Success 200 {object} APIResponse{data=PriceReport}
// @Failure 503 {object} APIResponse "Price store not populated"
// @Router /market/prices [get]
func (h *Handler) MarketPrices(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.store == nil {
		rw.ServiceError(ErrNoPriceStore)
		return
	}

	ctx := r.Context()
	m := h.config.Market

	dist, err := h.store.PriceDistribution(ctx)
	if err != nil {
		rw.ServiceError(err)
		return
	}
	yearly, err := h.store.MedianPriceByYear(ctx)
	if err != nil {
		rw.ServiceError(err)
		return
	}
	hist, err := h.store.PriceHistogram(ctx, float64(m.PriceBucketWidth), float64(m.PriceHistogramMax))
	if err != nil {
		rw.ServiceError(err)
		return
	}

	version := h.store.LoadedVersion()
	rw.SuccessWithMeta(PriceReport{
		Version:      version,
		Distribution: dist,
		Yearly:       yearly,
		Histogram:    hist,
	}, &APIMeta{CatalogVersion: version})
}
