// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/test/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("OK"))
	})
	r.Post("/test/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK) // ignored by net/http, must not be recorded
	})
	return r
}

func TestPrometheusMetrics(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		endpoint   string
	}{
		{"route pattern label", http.MethodGet, "/test/items/42", http.StatusOK, "/test/items/{id}"},
		{"handler status", http.MethodGet, "/test/items/missing", http.StatusNotFound, "/test/items/{id}"},
		{"first status wins", http.MethodPost, "/test/fail", http.StatusInternalServerError, "/test/fail"},
		{"no route", http.MethodGet, "/nowhere", http.StatusNotFound, UnmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, strconv.Itoa(tt.wantStatus))
			before := testutil.ToFloat64(counter)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("api_requests_total{%s %s %d} increased by %v, want 1", tt.method, tt.endpoint, tt.wantStatus, got)
			}
		})
	}
}

func TestPrometheusMetrics_ActiveRequests(t *testing.T) {
	var during float64
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	}))

	before := testutil.ToFloat64(metrics.APIActiveRequests)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if during != before+1 {
		t.Errorf("active requests during handler = %v, want %v", during, before+1)
	}
	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("active requests after handler = %v, want %v", after, before)
	}
}

func TestRoutePattern_WithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	if got := routePattern(req); got != UnmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, UnmatchedRoute)
	}
}
