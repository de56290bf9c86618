// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package dataset

import (
	"time"

	"github.com/Phantosirius/steam-dashboard/internal/config"
	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// ReasonOutsideWindow labels rows dropped by the release-year window in
// metrics, next to the games.Reason values.
const ReasonOutsideWindow = "outside_window"

// Options controls catalog construction.
type Options struct {
	Window games.Window
	Rules  games.FilterRules
}

// DefaultOptions returns the 2014-2024 window and the default filter rules.
func DefaultOptions() Options {
	return Options{
		Window: games.DefaultWindow(),
		Rules:  games.DefaultFilterRules(),
	}
}

// OptionsFromConfig maps the dataset and filter config sections.
func OptionsFromConfig(ds config.DatasetConfig, f config.FilterConfig) Options {
	return Options{
		Window: games.Window{FirstYear: ds.FirstYear, FinalYear: ds.FinalYear},
		Rules: games.FilterRules{
			MinReviews:    int64(f.MinReviews),
			MaxGenres:     f.MaxGenres,
			MaxNameLength: f.MaxNameLength,
			MaxUppercase:  f.MaxUppercase,
			ExcludeNSFW:   f.ExcludeNSFW,
		},
	}
}

// BuildCatalog cleans and annotates rows into a read-only catalog. For each
// row, in order: drop it when the release year is outside the window, parse
// genres, recompute review fields, apply the quality filter, then classify.
// Row order is preserved.
func BuildCatalog(rows []Row, source string, loadedAt time.Time, opts Options) *games.Catalog {
	stats := games.Stats{
		RawRows:  len(rows),
		Excluded: make(map[games.Reason]int, len(games.Reasons)),
	}
	for _, r := range games.Reasons {
		stats.Excluded[r] = 0
	}

	records := make([]games.GameRecord, 0, len(rows))
	for i := range rows {
		rec := rows[i].Record

		if !opts.Window.Contains(rec.ReleaseYear) {
			stats.OutsideWindow++
			continue
		}

		rec.Genres = games.ParseGenres(rec.RawGenres)
		rec.Derive()

		if reason, ok := opts.Rules.Check(&rec); !ok {
			stats.Excluded[reason]++
			continue
		}

		rec.Category = games.Classify(rec.Name, rec.Genres)
		records = append(records, rec)
	}
	stats.Kept = len(records)

	return games.NewCatalog(records, source, loadedAt, opts.Window, stats)
}

// exclusionCounts flattens stats for metrics.
func exclusionCounts(stats games.Stats) map[string]int {
	out := make(map[string]int, len(stats.Excluded)+1)
	out[ReasonOutsideWindow] = stats.OutsideWindow
	for reason, n := range stats.Excluded {
		out[string(reason)] = n
	}
	return out
}
