// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package market

import (
	"sort"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// Quadrant is the strategy class of a genre relative to the medians of
// growth and mean positive ratio.
type Quadrant string

const (
	QuadrantWinner   Quadrant = "Winner"   // high growth, high quality
	QuadrantEmerging Quadrant = "Emerging" // high growth, low quality
	QuadrantStable   Quadrant = "Stable"   // low growth, high quality
	QuadrantRisky    Quadrant = "Risky"    // low growth, low quality
)

// Quadrants lists every quadrant in display order.
var Quadrants = []Quadrant{QuadrantWinner, QuadrantEmerging, QuadrantStable, QuadrantRisky}

// Default genre table settings.
const (
	DefaultMinGames          = 500
	MinGamesFloor            = 200
	MinGamesCeiling          = 10000
	DefaultQualityMinReviews = 1_000_000
	DefaultTopN              = 10

	bubbleScale = 3000.0
	bubbleBase  = 200.0
)

// Options controls GenreTable.
type Options struct {
	// MinGames is the smallest game count a genre needs to be reported.
	MinGames int

	// Window gives the first and final year for growth.
	Window games.Window

	// QualityMinReviews is the review volume a genre needs to enter the
	// best-quality ranking. When no genre has it, every reported genre
	// is ranked.
	QualityMinReviews int64

	// TopN is the length of each ranking.
	TopN int
}

// DefaultOptions returns a 500-game threshold over the default window.
func DefaultOptions() Options {
	return Options{
		MinGames:          DefaultMinGames,
		Window:            games.DefaultWindow(),
		QualityMinReviews: DefaultQualityMinReviews,
		TopN:              DefaultTopN,
	}
}

// YearCount is the number of games released in one year.
type YearCount struct {
	Year  int `json:"year"`
	Games int `json:"games"`
}

// GenreStats aggregates every record carrying one genre.
type GenreStats struct {
	Genre        string      `json:"genre"`
	Games        int         `json:"games"`
	TotalReviews int64       `json:"total_reviews"`
	Positive     int64       `json:"positive"`
	Negative     int64       `json:"negative"`
	MeanRatio    float64     `json:"mean_ratio"`
	PerYear      []YearCount `json:"per_year"`
	Growth       int         `json:"growth"`
	BubbleSize   float64     `json:"bubble_size"`
	Quadrant     Quadrant    `json:"quadrant,omitempty"`
}

// Headline names the standout genres of a report.
type Headline struct {
	MostPopular     GenreStats `json:"most_popular"`
	BestQuality     GenreStats `json:"best_quality"`
	StrongestGrowth GenreStats `json:"strongest_growth"`
}

// GenreReport is the result of GenreTable.
type GenreReport struct {
	// Threshold is the MinGames value the report was built with.
	Threshold int `json:"threshold"`

	// Empty is set when no genre reaches Threshold. Every other field
	// except TotalGenres is then zero.
	Empty bool `json:"empty"`

	// TotalGenres counts genres before the threshold.
	TotalGenres int `json:"total_genres"`

	// Genres holds the genres reaching Threshold, sorted by name.
	Genres []GenreStats `json:"genres"`

	MedianGrowth float64 `json:"median_growth"`
	MedianRatio  float64 `json:"median_ratio"`

	// QuadrantGenres lists genre names per quadrant.
	QuadrantGenres map[Quadrant][]string `json:"quadrant_genres,omitempty"`

	TopByReviews []GenreStats `json:"top_by_reviews,omitempty"`
	TopByQuality []GenreStats `json:"top_by_quality,omitempty"`
	TopByGrowth  []GenreStats `json:"top_by_growth,omitempty"`

	// QualityVolumeFallback is set when no genre had QualityMinReviews and
	// TopByQuality ranks every reported genre instead.
	QualityVolumeFallback bool `json:"quality_volume_fallback"`

	Headline *Headline `json:"headline,omitempty"`
}

// GenreTable aggregates records per genre, keeps the genres with at least
// opts.MinGames games and classifies them into quadrants. A record counts
// once for each of its genres. Growth is the final-year count minus the
// first-year count, with missing years counted as zero.
func GenreTable(records []games.GameRecord, opts Options) *GenreReport {
	all := aggregateGenres(records, opts.Window)

	report := &GenreReport{
		Threshold:   opts.MinGames,
		TotalGenres: len(all),
	}

	var filtered []GenreStats
	for i := range all {
		if all[i].Games >= opts.MinGames {
			filtered = append(filtered, all[i])
		}
	}
	if len(filtered) == 0 {
		report.Empty = true
		return report
	}

	growths := make([]float64, len(filtered))
	ratios := make([]float64, len(filtered))
	for i := range filtered {
		growths[i] = float64(filtered[i].Growth)
		ratios[i] = filtered[i].MeanRatio
	}
	report.MedianGrowth = Median(growths)
	report.MedianRatio = Median(ratios)

	report.QuadrantGenres = make(map[Quadrant][]string, len(Quadrants))
	for i := range filtered {
		q := classifyQuadrant(float64(filtered[i].Growth), filtered[i].MeanRatio, report.MedianGrowth, report.MedianRatio)
		filtered[i].Quadrant = q
		report.QuadrantGenres[q] = append(report.QuadrantGenres[q], filtered[i].Genre)
	}
	report.Genres = filtered

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	report.TopByReviews = topBy(filtered, topN, func(a, b *GenreStats) bool {
		return a.TotalReviews > b.TotalReviews
	})
	report.TopByGrowth = topBy(filtered, topN, func(a, b *GenreStats) bool {
		return a.Growth > b.Growth
	})

	var highVolume []GenreStats
	for i := range filtered {
		if filtered[i].TotalReviews >= opts.QualityMinReviews {
			highVolume = append(highVolume, filtered[i])
		}
	}
	if len(highVolume) == 0 {
		report.QualityVolumeFallback = true
		highVolume = filtered
	}
	byRatio := func(a, b *GenreStats) bool { return a.MeanRatio > b.MeanRatio }
	report.TopByQuality = topBy(highVolume, topN, byRatio)

	report.Headline = &Headline{
		MostPopular:     report.TopByReviews[0],
		BestQuality:     report.TopByQuality[0],
		StrongestGrowth: report.TopByGrowth[0],
	}

	return report
}

// genreAcc accumulates one genre during aggregation.
type genreAcc struct {
	stats    GenreStats
	ratioSum float64
	byYear   map[int]int
}

// aggregateGenres builds per-genre stats sorted by genre name. Bubble
// sizes are scaled against the largest review total over all genres.
func aggregateGenres(records []games.GameRecord, window games.Window) []GenreStats {
	accs := make(map[string]*genreAcc)

	for i := range records {
		rec := &records[i]
		for _, g := range rec.Genres {
			if g == "" {
				continue
			}
			acc, ok := accs[g]
			if !ok {
				acc = &genreAcc{stats: GenreStats{Genre: g}, byYear: make(map[int]int)}
				accs[g] = acc
			}
			acc.stats.Games++
			acc.stats.TotalReviews += rec.TotalReviews
			acc.stats.Positive += rec.Positive
			acc.stats.Negative += rec.Negative
			acc.ratioSum += rec.PositiveRatio
			if window.Contains(rec.ReleaseYear) {
				acc.byYear[rec.ReleaseYear]++
			}
		}
	}

	var maxReviews int64
	for _, acc := range accs {
		if acc.stats.TotalReviews > maxReviews {
			maxReviews = acc.stats.TotalReviews
		}
	}
	if maxReviews == 0 {
		maxReviews = 1
	}

	years := window.Years()
	stats := make([]GenreStats, 0, len(accs))
	for _, acc := range accs {
		s := acc.stats
		s.MeanRatio = acc.ratioSum / float64(s.Games)
		s.PerYear = make([]YearCount, len(years))
		for j, y := range years {
			s.PerYear[j] = YearCount{Year: y, Games: acc.byYear[y]}
		}
		s.Growth = acc.byYear[window.FinalYear] - acc.byYear[window.FirstYear]
		s.BubbleSize = float64(s.TotalReviews)/float64(maxReviews)*bubbleScale + bubbleBase
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Genre < stats[j].Genre })
	return stats
}

// classifyQuadrant places a genre; values equal to the median count as high.
func classifyQuadrant(growth, ratio, medGrowth, medRatio float64) Quadrant {
	highGrowth := growth >= medGrowth
	highQuality := ratio >= medRatio

	switch {
	case highGrowth && highQuality:
		return QuadrantWinner
	case highGrowth:
		return QuadrantEmerging
	case highQuality:
		return QuadrantStable
	default:
		return QuadrantRisky
	}
}

// topBy returns the first n stats ordered by less, ties kept in input order.
func topBy(stats []GenreStats, n int, less func(a, b *GenreStats) bool) []GenreStats {
	out := make([]GenreStats, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
