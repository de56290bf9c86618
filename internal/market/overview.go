// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package market

import "github.com/Phantosirius/steam-dashboard/internal/games"

// OverviewReport summarizes the whole market.
type OverviewReport struct {
	TotalGames   int   `json:"total_games"`
	TotalReviews int64 `json:"total_reviews"`
	FreeGames    int   `json:"free_games"`

	// FreeShare is the percentage of games priced at zero.
	FreeShare float64 `json:"free_share"`

	// MeanRatio is the mean positive review ratio over all games.
	MeanRatio float64 `json:"mean_ratio"`

	// PerYear has one entry for every window year, zero counts included.
	PerYear []YearCount `json:"per_year"`

	FirstYear      int `json:"first_year"`
	FinalYear      int `json:"final_year"`
	FirstYearGames int `json:"first_year_games"`
	FinalYearGames int `json:"final_year_games"`

	// ChangePercent is the release count change from the first to the
	// final window year. Nil when the first year has no games.
	ChangePercent *float64 `json:"change_percent"`
}

// Overview computes market totals over records. Only records inside window
// contribute to PerYear; totals include every record.
func Overview(records []games.GameRecord, window games.Window) *OverviewReport {
	report := &OverviewReport{
		TotalGames: len(records),
		FirstYear:  window.FirstYear,
		FinalYear:  window.FinalYear,
	}

	byYear := make(map[int]int)
	var ratioSum float64
	for i := range records {
		rec := &records[i]
		report.TotalReviews += rec.TotalReviews
		ratioSum += rec.PositiveRatio
		if rec.IsFree() {
			report.FreeGames++
		}
		if window.Contains(rec.ReleaseYear) {
			byYear[rec.ReleaseYear]++
		}
	}

	if report.TotalGames > 0 {
		report.FreeShare = float64(report.FreeGames) / float64(report.TotalGames) * 100
		report.MeanRatio = ratioSum / float64(report.TotalGames)
	}

	years := window.Years()
	report.PerYear = make([]YearCount, len(years))
	for i, y := range years {
		report.PerYear[i] = YearCount{Year: y, Games: byYear[y]}
	}

	report.FirstYearGames = byYear[window.FirstYear]
	report.FinalYearGames = byYear[window.FinalYear]
	if report.FirstYearGames > 0 {
		change := float64(report.FinalYearGames-report.FirstYearGames) / float64(report.FirstYearGames) * 100
		report.ChangePercent = &change
	}

	return report
}
