// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package database holds the DuckDB store behind the price analytics.
//
// The store keeps one table, games, with the columns the price queries
// need. LoadGames replaces its contents from a catalog inside a single
// transaction, so readers never see a half-written table.
//
// # Queries
//
//   - PriceDistribution: count, mean, sample standard deviation, min,
//     quartiles (QUANTILE_CONT) and max
//   - MedianPriceByYear: games and median price per release year
//   - PriceHistogram: fixed-width price buckets with an overflow count
//
// Every query is timed through metrics.RecordDBQuery. Queries return
// ErrNotLoaded until the first successful LoadGames.
//
// # Usage
//
//	db, err := database.Open(cfg.Database, logger)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.LoadGames(ctx, catalog); err != nil {
//	    return err
//	}
//	dist, err := db.PriceDistribution(ctx)
//
// The default path ":memory:" keeps the store in process. A file path
// persists it; the parent directory is created when missing.
package database
