// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"net/http"

	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/recommend"
)

// Recommendations returns the games most similar to the named game.
//
// Unknown names answer 404; a dataset with nothing to compare against
// answers 422 INSUFFICIENT_DATA.
//
// @Summary Recommend similar games
// @Tags Recommendations
// @Produce json
// @Param name query string true "Exact game name"
// @Param limit query int false "Maximum results"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse "Missing name"
// @Failure 404 {object} APIResponse "Unknown game"
// @Failure 422 {object} APIResponse "Insufficient data"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := parseIntQuery(rw, r, "limit", 0)
	if !ok {
		return
	}
	req := RecommendRequest{
		Name:  r.URL.Query().Get("name"),
		Limit: limit,
	}
	if !validateRequest(rw, &req) {
		return
	}

	catalog, ok := h.currentCatalog(rw)
	if !ok {
		return
	}

	resp, err := h.engine.Recommend(r.Context(), catalog, recommend.Request{
		Name:      req.Name,
		Limit:     req.Limit,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		logging.Ctx(r.Context()).Debug().
			Str("name", sanitizeLogValue(req.Name)).
			Err(err).
			Msg("Recommendation failed")
		rw.ServiceError(err)
		return
	}

	rw.SuccessWithMeta(resp, catalogMeta(catalog, intPtr(len(resp.Items))))
}
