// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package database

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

var (
	// ErrNotLoaded is returned by queries before the first LoadGames.
	ErrNotLoaded = errors.New("games table not loaded")

	// ErrNilCatalog is returned by LoadGames for a nil catalog.
	ErrNilCatalog = errors.New("nil catalog")

	// ErrInvalidBuckets is returned by PriceHistogram for non-positive
	// bucket settings.
	ErrInvalidBuckets = errors.New("invalid histogram buckets")
)

// closeWithLog closes a resource and logs any error.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func closeWithLog(closer io.Closer, logger zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource in error paths where the Close error is not
// actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
