// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Phantosirius/steam-dashboard/internal/database"
	"github.com/Phantosirius/steam-dashboard/internal/dataset"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/recommend"
)

// ErrNoPriceStore is returned when the price analytics store is not
// configured.
var ErrNoPriceStore = errors.New("price analytics store not available")

// ServiceError maps a domain error onto an API error response:
//
//	recommend.ErrGameNotFound       404 NOT_FOUND
//	recommend.ErrInsufficientData   422 INSUFFICIENT_DATA
//	dataset.ErrNotLoaded            503 SERVICE_UNAVAILABLE
//	database.ErrNotLoaded           503 SERVICE_UNAVAILABLE
//	context deadline                503 SERVICE_UNAVAILABLE
//	anything else                   500 INTERNAL_ERROR
func (rw *ResponseWriter) ServiceError(err error) {
	log := logging.Ctx(rw.r.Context())

	switch {
	// ErrGameNotFound wraps ErrInsufficientData; check it first.
	case errors.Is(err, recommend.ErrGameNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrInsufficientData):
		rw.InsufficientData(err.Error())
	case errors.Is(err, dataset.ErrNotLoaded):
		rw.ServiceUnavailable("Dataset is still loading")
	case errors.Is(err, database.ErrNotLoaded), errors.Is(err, ErrNoPriceStore):
		rw.ServiceUnavailable("Price analytics are not available yet")
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("Request timed out")
		rw.ServiceUnavailable("Request timed out")
	case errors.Is(err, context.Canceled):
		log.Debug().Msg("Request canceled by client")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		rw.InternalError("An internal error occurred")
	}
}
