// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package market

import (
	"sort"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// Default popular-games settings.
const (
	DefaultPopularLimit      = 20
	DefaultScatterMinReviews = 20_000
)

// PopularOptions controls Popular.
type PopularOptions struct {
	// Limit is the length of the top list.
	Limit int

	// ScatterMinReviews is the review count a game needs to enter the
	// popularity vs quality scatter.
	ScatterMinReviews int64
}

// DefaultPopularOptions returns a top 20 and a 20,000-review scatter floor.
func DefaultPopularOptions() PopularOptions {
	return PopularOptions{
		Limit:             DefaultPopularLimit,
		ScatterMinReviews: DefaultScatterMinReviews,
	}
}

// ScatterPoint is one game on the popularity vs quality plane.
type ScatterPoint struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	TotalReviews  int64          `json:"total_reviews"`
	PositiveRatio float64        `json:"positive_ratio"`
	Price         float64        `json:"price"`
	ReleaseYear   int            `json:"release_year"`
	Category      games.Category `json:"category"`
}

// PopularReport ranks the most reviewed games.
type PopularReport struct {
	// UniqueGames counts records after deduplication by name.
	UniqueGames int `json:"unique_games"`

	// Top holds the most reviewed games, most reviewed first.
	Top []games.GameRecord `json:"top"`

	// Scatter holds every unique game with at least ScatterMinReviews
	// reviews, most reviewed first.
	Scatter []ScatterPoint `json:"scatter"`
}

// Popular deduplicates records by name, keeping the most reviewed record of
// each name, then ranks them by total reviews. Ties keep input order.
func Popular(records []games.GameRecord, opts PopularOptions) *PopularReport {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	unique := dedupeByName(records)

	report := &PopularReport{UniqueGames: len(unique)}

	top := unique
	if len(top) > limit {
		top = top[:limit]
	}
	report.Top = make([]games.GameRecord, len(top))
	for i, idx := range top {
		report.Top[i] = records[idx]
	}

	report.Scatter = make([]ScatterPoint, 0)
	for _, idx := range unique {
		rec := &records[idx]
		if rec.TotalReviews < opts.ScatterMinReviews {
			// unique is sorted by reviews, nothing further qualifies
			break
		}
		report.Scatter = append(report.Scatter, ScatterPoint{
			ID:            rec.ID,
			Name:          rec.Name,
			TotalReviews:  rec.TotalReviews,
			PositiveRatio: rec.PositiveRatio,
			Price:         rec.Price,
			ReleaseYear:   rec.ReleaseYear,
			Category:      rec.Category,
		})
	}

	return report
}

// dedupeByName returns record indexes sorted by descending total reviews
// with only the first (most reviewed) index kept per name.
func dedupeByName(records []games.GameRecord) []int {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return records[order[i]].TotalReviews > records[order[j]].TotalReviews
	})

	seen := make(map[string]struct{}, len(records))
	unique := order[:0]
	for _, idx := range order {
		name := records[idx].Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, idx)
	}
	return unique
}
