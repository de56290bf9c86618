// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates a struct using go-playground/validator and
// writes a VALIDATION_FAILED response when it fails. It reports whether the
// request is valid.
//
// Example:
//
//	req := SearchRequest{Query: r.URL.Query().Get("q")}
//	if !validateRequest(rw, &req) {
//	    return
//	}
func validateRequest(rw *ResponseWriter, v any) bool {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return true
	}

	event := logging.Ctx(rw.r.Context()).Debug().Str("path", rw.r.URL.Path)
	for _, fe := range validationErr.Errors() {
		event = event.Str(fe.Field(), fe.Tag())
	}
	event.Msg("request validation failed")

	apiErr := validationErr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}

// parseIntQuery reads an integer query parameter. A missing parameter gives
// defaultValue; a malformed one writes a 400 response and reports false.
func parseIntQuery(rw *ResponseWriter, r *http.Request, key string, defaultValue int) (int, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		rw.ValidationError(fmt.Sprintf("%s must be an integer", key), map[string]any{
			"field": key,
			"value": value,
		})
		return 0, false
	}
	return n, true
}

// currentCatalog returns the loaded catalog, writing a 503 response when
// none is available yet.
func (h *Handler) currentCatalog(rw *ResponseWriter) (*games.Catalog, bool) {
	catalog, err := h.catalogs.Current()
	if err != nil {
		rw.ServiceError(err)
		return nil, false
	}
	return catalog, true
}

// catalogMeta builds response metadata tagged with the catalog version.
func catalogMeta(catalog *games.Catalog, count *int) *APIMeta {
	return &APIMeta{
		CatalogVersion: catalog.Version(),
		Count:          count,
	}
}

func intPtr(n int) *int {
	return &n
}
