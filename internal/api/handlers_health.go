// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"net/http"
	"time"
)

// ReadinessStatus is the body of the readiness probe.
type ReadinessStatus struct {
	Ready          bool    `json:"ready"`
	CatalogLoaded  bool    `json:"catalog_loaded"`
	CatalogVersion string  `json:"catalog_version,omitempty"`
	Games          int     `json:"games"`
	PriceStore     bool    `json:"price_store"`
	Uptime         float64 `json:"uptime"`
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once a catalog is loaded, 503 before that.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Dataset still loading"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := ReadinessStatus{
		PriceStore: h.store != nil && h.store.LoadedVersion() != "",
		Uptime:     time.Since(h.startTime).Seconds(),
	}

	catalog, err := h.catalogs.Current()
	if err != nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dataset is still loading", status)
		return
	}

	status.Ready = true
	status.CatalogLoaded = true
	status.CatalogVersion = catalog.Version()
	status.Games = catalog.Len()
	rw.Success(status)
}
