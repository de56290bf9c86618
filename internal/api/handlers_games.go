// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// DatasetSummary describes the loaded catalog.
type DatasetSummary struct {
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loaded_at"`
	Version  string       `json:"version"`
	Games    int          `json:"games"`
	Window   games.Window `json:"window"`
	Stats    games.Stats  `json:"stats"`

	// Excluded is the total number of rows removed by the filters.
	Excluded int `json:"excluded"`
}

// Dataset returns the source and cleaning statistics of the loaded catalog.
//
// @Summary Dataset summary
// @Tags Games
// @Produce json
// @Success 200 {object} APIResponse{data=DatasetSummary}
// @Failure 503 {object} APIResponse "Dataset still loading"
// @Router /dataset [get]
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	rw.SuccessWithMeta(DatasetSummary{
		Source:   catalog.Source,
		LoadedAt: catalog.LoadedAt,
		Version:  catalog.Version(),
		Games:    catalog.Len(),
		Window:   catalog.Window,
		Stats:    catalog.Stats,
		Excluded: catalog.Stats.TotalExcluded(),
	}, catalogMeta(catalog, nil))
}

// SearchGames finds games whose name contains q, ignoring case.
//
// @Summary Search games by name
// @Tags Games
// @Produce json
// @Param q query string false "Name fragment"
// @Param limit query int false "Maximum results (1-100)"
// @Success 200 {object} APIResponse{data=[]games.GameRecord}
// @Router /games [get]
func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := parseIntQuery(rw, r, "limit", DefaultSearchLimit)
	if !ok {
		return
	}
	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	}
	if !validateRequest(rw, &req) {
		return
	}

	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	results := catalog.Search(req.Query, req.Limit)
	if results == nil {
		results = []games.GameRecord{}
	}
	rw.SuccessWithMeta(results, catalogMeta(catalog, intPtr(len(results))))
}

// GetGame returns one game by its Steam app ID.
//
// @Summary Get a game
// @Tags Games
// @Produce json
// @Param id path int true "Steam app ID"
// @Success 200 {object} APIResponse{data=games.GameRecord}
// @Failure 400 {object} APIResponse "Malformed ID"
// @Failure 404 {object} APIResponse "Unknown ID"
// @Router /games/{id} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		rw.BadRequest("Game ID must be a non-negative integer")
		return
	}

	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	rec, found := catalog.ByID(id)
	if !found {
		rw.NotFound("No game with ID " + raw)
		return
	}
	rw.SuccessWithMeta(rec, catalogMeta(catalog, nil))
}
