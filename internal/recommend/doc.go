// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package recommend implements content-based game recommendations.
//
// # Scoring
//
// A candidate is rated against a reference game on three components that
// sum to at most 100:
//
//   - Genre (50): share of the reference genres the candidate also has
//   - Quality (30): closeness of positive review ratios
//   - Popularity (20): closeness of ln(1 + total reviews), zero at a gap of 5
//
// The genre component divides by the reference genre count, so the score
// is not symmetric.
//
// # Pipeline
//
// Engine.Recommend finds the reference by exact name, then narrows the
// candidate pool in two steps, each undone when it leaves too few games:
//
//  1. same category as the reference (at least 20 by default)
//  2. at least one shared genre (at least 5 by default)
//
// The remaining candidates are scored, stably sorted by descending total
// and cut to the limit (5 by default).
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, catalog, recommend.Request{Name: "Portal 2"})
//	if errors.Is(err, recommend.ErrInsufficientData) {
//	    // unknown game or nothing to compare against
//	}
//
// # Thread Safety
//
// The engine is safe for concurrent use. Catalogs are read-only; responses
// are cached per catalog version so a reloaded dataset never serves results
// computed from the previous one.
package recommend
