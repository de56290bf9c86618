// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/Phantosirius/steam-dashboard/internal/database"
	"github.com/Phantosirius/steam-dashboard/internal/dataset"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/recommend"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	data := map[string]string{"message": "hello"}
	NewResponseWriter(w, r).Success(data)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.Success {
		t.Error("Expected Success to be true")
	}
	if response.Error != nil {
		t.Error("Expected Error to be nil")
	}
	if response.Meta == nil {
		t.Fatal("Expected Meta to not be nil")
	}
	if response.Meta.Timestamp.IsZero() {
		t.Error("Expected Timestamp to be set")
	}
}

func TestResponseWriter_SuccessWithMeta(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-123"))

	NewResponseWriter(w, r).SuccessWithMeta([]int{1, 2}, &APIMeta{CatalogVersion: "v1", Count: intPtr(2)})

	env := decodeEnvelope(t, w)
	if env.Meta.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", env.Meta.RequestID)
	}
	if env.Meta.CatalogVersion != "v1" {
		t.Errorf("CatalogVersion = %q, want v1", env.Meta.CatalogVersion)
	}
	if env.Meta.Count == nil || *env.Meta.Count != 2 {
		t.Errorf("Count = %v, want 2", env.Meta.Count)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("bad") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, ErrCodeNotFound},
		{"insufficient data", func(rw *ResponseWriter) { rw.InsufficientData("thin") }, http.StatusUnprocessableEntity, ErrCodeInsufficientData},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("boom") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("invalid", map[string]any{"field": "q"}) }, http.StatusBadRequest, ErrCodeValidationFailed},
		{"database", func(rw *ResponseWriter) { rw.DatabaseError(errors.New("connection reset")) }, http.StatusInternalServerError, ErrCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.write(NewResponseWriter(w, r))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, w)
			if env.Success {
				t.Error("Expected Success to be false")
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestResponseWriter_DatabaseErrorHidesCause(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	NewResponseWriter(w, r).DatabaseError(errors.New("secret table layout"))

	env := decodeEnvelope(t, w)
	if env.Error.Message == "secret table layout" {
		t.Error("database error text leaked to the client")
	}
}

func TestServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"game not found", fmt.Errorf("%w: %q", recommend.ErrGameNotFound, "Zelda"), http.StatusNotFound, ErrCodeNotFound},
		{"insufficient data", fmt.Errorf("empty catalog: %w", recommend.ErrInsufficientData), http.StatusUnprocessableEntity, ErrCodeInsufficientData},
		{"dataset not loaded", dataset.ErrNotLoaded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"database not loaded", database.ErrNotLoaded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"no price store", ErrNoPriceStore, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			NewResponseWriter(w, r).ServiceError(tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, w)
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestWriteHelpers(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	WriteError(w, r, http.StatusTeapot, "TEAPOT", "short and stout")

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.Code)
	}

	w = httptest.NewRecorder()
	WriteSuccess(w, r, "ok")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
