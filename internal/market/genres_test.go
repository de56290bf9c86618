// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package market

import (
	"math"
	"testing"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

func rec(name string, year int, pos, neg int64, genres ...string) games.GameRecord {
	r := games.GameRecord{Name: name, ReleaseYear: year, Positive: pos, Negative: neg, Genres: genres}
	r.Derive()
	return r
}

// repeat returns n copies of r.
func repeat(r games.GameRecord, n int) []games.GameRecord {
	out := make([]games.GameRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestGenreTable_Growth(t *testing.T) {
	t.Parallel()

	var records []games.GameRecord
	records = append(records, repeat(rec("a", 2014, 80, 20, "Action"), 100)...)
	records = append(records, repeat(rec("b", 2019, 80, 20, "Action"), 37)...)
	records = append(records, repeat(rec("c", 2024, 80, 20, "Action"), 150)...)

	opts := DefaultOptions()
	opts.MinGames = 1
	report := GenreTable(records, opts)

	if report.Empty || len(report.Genres) != 1 {
		t.Fatalf("report = %+v", report)
	}
	action := report.Genres[0]
	if action.Growth != 50 {
		t.Errorf("Growth = %d, want 50", action.Growth)
	}
	if action.Games != 287 {
		t.Errorf("Games = %d, want 287", action.Games)
	}
	if len(action.PerYear) != 11 || action.PerYear[0].Games != 100 || action.PerYear[5].Games != 37 || action.PerYear[1].Games != 0 {
		t.Errorf("PerYear = %+v", action.PerYear)
	}
}

func TestGenreTable_GrowthMissingYears(t *testing.T) {
	t.Parallel()

	records := []games.GameRecord{
		rec("new", 2024, 1, 0, "Fresh"),
		rec("old", 2014, 1, 0, "Faded"),
		rec("mid", 2018, 1, 0, "Middle"),
	}
	opts := DefaultOptions()
	opts.MinGames = 1

	report := GenreTable(records, opts)
	growth := map[string]int{}
	for _, g := range report.Genres {
		growth[g.Genre] = g.Growth
	}

	want := map[string]int{"Fresh": 1, "Faded": -1, "Middle": 0}
	for g, w := range want {
		if growth[g] != w {
			t.Errorf("%s growth = %d, want %d", g, growth[g], w)
		}
	}
}

func TestGenreTable_Aggregates(t *testing.T) {
	t.Parallel()

	records := []games.GameRecord{
		rec("g1", 2015, 90, 10, "Action", "Indie"),
		rec("g2", 2016, 50, 50, "Action"),
		rec("g3", 2017, 0, 0, "Indie"),
	}
	opts := DefaultOptions()
	opts.MinGames = 1

	report := GenreTable(records, opts)
	if report.TotalGenres != 2 {
		t.Fatalf("TotalGenres = %d, want 2", report.TotalGenres)
	}

	// Sorted by name
	action, indie := report.Genres[0], report.Genres[1]
	if action.Genre != "Action" || indie.Genre != "Indie" {
		t.Fatalf("genres = %s, %s", action.Genre, indie.Genre)
	}

	if action.Games != 2 || action.TotalReviews != 200 || action.Positive != 140 || action.Negative != 60 {
		t.Errorf("Action = %+v", action)
	}
	if math.Abs(action.MeanRatio-0.7) > 1e-9 {
		t.Errorf("Action MeanRatio = %v, want 0.7", action.MeanRatio)
	}
	if math.Abs(indie.MeanRatio-0.45) > 1e-9 {
		t.Errorf("Indie MeanRatio = %v, want 0.45", indie.MeanRatio)
	}

	// Bubble: max reviews is Action's 200
	if action.BubbleSize != 3200 {
		t.Errorf("Action BubbleSize = %v, want 3200", action.BubbleSize)
	}
	if indie.BubbleSize != 100.0/200*3000+200 {
		t.Errorf("Indie BubbleSize = %v, want 1700", indie.BubbleSize)
	}
}

func TestGenreTable_EmptyCarriesThreshold(t *testing.T) {
	t.Parallel()

	records := repeat(rec("a", 2020, 10, 0, "Action"), 10)

	tests := []struct {
		name    string
		records []games.GameRecord
	}{
		{"below threshold", records},
		{"no records", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := GenreTable(tt.records, DefaultOptions())
			if !report.Empty {
				t.Fatal("Empty = false, want true")
			}
			if report.Threshold != DefaultMinGames {
				t.Errorf("Threshold = %d, want %d", report.Threshold, DefaultMinGames)
			}
			if len(report.Genres) != 0 || report.Headline != nil {
				t.Error("empty report should carry no genres")
			}
		})
	}
}

func TestGenreTable_Threshold(t *testing.T) {
	t.Parallel()

	var records []games.GameRecord
	records = append(records, repeat(rec("big", 2020, 10, 0, "Big"), 500)...)
	records = append(records, repeat(rec("small", 2020, 10, 0, "Small"), 499)...)

	report := GenreTable(records, DefaultOptions())
	if report.Empty || len(report.Genres) != 1 || report.Genres[0].Genre != "Big" {
		t.Errorf("genres = %+v", report.Genres)
	}
	if report.TotalGenres != 2 {
		t.Errorf("TotalGenres = %d, want 2", report.TotalGenres)
	}
}

func TestGenreTable_Quadrants(t *testing.T) {
	t.Parallel()

	// growth, ratio per genre; medians are growth 5 and ratio 0.7
	var records []games.GameRecord
	add := func(genre string, growth int, pos int64) {
		records = append(records, repeat(rec(genre, 2014, pos, 100-pos, genre), 10)...)
		records = append(records, repeat(rec(genre, 2024, pos, 100-pos, genre), 10+growth)...)
	}
	add("Winner", 10, 90)
	add("Emerging", 10, 50)
	add("Stable", 0, 90)
	add("Risky", 0, 50)
	add("Median", 5, 70)

	opts := DefaultOptions()
	opts.MinGames = 1
	report := GenreTable(records, opts)

	if report.MedianGrowth != 5 || math.Abs(report.MedianRatio-0.7) > 1e-9 {
		t.Fatalf("medians = %v, %v", report.MedianGrowth, report.MedianRatio)
	}

	want := map[string]Quadrant{
		"Winner":   QuadrantWinner,
		"Emerging": QuadrantEmerging,
		"Stable":   QuadrantStable,
		"Risky":    QuadrantRisky,
		"Median":   QuadrantWinner, // equal to both medians counts as high
	}
	for _, g := range report.Genres {
		if g.Quadrant != want[g.Genre] {
			t.Errorf("%s quadrant = %s, want %s", g.Genre, g.Quadrant, want[g.Genre])
		}
	}
	if len(report.QuadrantGenres[QuadrantWinner]) != 2 {
		t.Errorf("winners = %v", report.QuadrantGenres[QuadrantWinner])
	}
}

func TestGenreTable_Rankings(t *testing.T) {
	t.Parallel()

	var records []games.GameRecord
	// Popular: lots of reviews, mediocre quality
	records = append(records, repeat(rec("p", 2024, 600_000, 400_000, "Popular"), 2)...)
	// Niche: few reviews, best quality
	records = append(records, repeat(rec("n", 2014, 99, 1, "Niche"), 2)...)
	// Solid: enough volume, good quality, strong growth
	records = append(records, repeat(rec("s", 2024, 900_000, 100_000, "Solid"), 3)...)

	opts := DefaultOptions()
	opts.MinGames = 1
	report := GenreTable(records, opts)

	if report.QualityVolumeFallback {
		t.Error("high-volume genres exist, no fallback expected")
	}
	if report.Headline.MostPopular.Genre != "Solid" {
		t.Errorf("most popular = %s, want Solid", report.Headline.MostPopular.Genre)
	}
	if report.Headline.BestQuality.Genre != "Solid" {
		t.Errorf("best quality = %s, want Solid (Niche lacks volume)", report.Headline.BestQuality.Genre)
	}
	if report.Headline.StrongestGrowth.Genre != "Solid" {
		t.Errorf("strongest growth = %s, want Solid", report.Headline.StrongestGrowth.Genre)
	}
	if len(report.TopByQuality) != 2 {
		t.Errorf("TopByQuality = %d genres, want 2", len(report.TopByQuality))
	}

	opts.QualityMinReviews = 1 << 60
	fallback := GenreTable(records, opts)
	if !fallback.QualityVolumeFallback || fallback.Headline.BestQuality.Genre != "Niche" {
		t.Errorf("fallback best quality = %s", fallback.Headline.BestQuality.Genre)
	}

	opts.TopN = 1
	short := GenreTable(records, opts)
	if len(short.TopByReviews) != 1 || len(short.TopByGrowth) != 1 {
		t.Error("TopN not applied")
	}
}

func TestMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"odd", []float64{5, 1, 3}, 3},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"negative", []float64{-10, 0, 10, -5}, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := append([]float64(nil), tt.values...)
			if got := Median(in); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
			for i := range in {
				if in[i] != tt.values[i] {
					t.Error("Median modified its input")
				}
			}
		})
	}
}
