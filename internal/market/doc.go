// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package market aggregates the game catalog into market reports.
//
//   - GenreTable: per-genre volume, quality and growth with strategy
//     quadrants (Winner, Emerging, Stable, Risky) against the medians
//   - Overview: totals, free-to-play share and releases per year
//   - Popular: most reviewed games, deduplicated by name
//
// Every function is pure and reads its input without modifying it.
package market
