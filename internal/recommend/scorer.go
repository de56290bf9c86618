// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"math"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// Score component weights. A perfect match totals 100.
const (
	GenreWeight      = 50.0
	QualityWeight    = 30.0
	PopularityWeight = 20.0

	// popularitySpan is the log-review distance at which the popularity
	// component reaches zero.
	popularitySpan = 5.0
)

// Score rates cand against ref. The genre component is normalized by the
// reference genre count, so Score(a, b) and Score(b, a) generally differ.
func Score(ref, cand *games.GameRecord) Breakdown {
	return newScorer(ref).score(cand)
}

// scorer caches the reference genre set across candidates.
type scorer struct {
	ref    *games.GameRecord
	genres map[string]struct{}
}

func newScorer(ref *games.GameRecord) *scorer {
	genres := make(map[string]struct{}, len(ref.Genres))
	for _, g := range ref.Genres {
		genres[g] = struct{}{}
	}
	return &scorer{ref: ref, genres: genres}
}

func (s *scorer) score(cand *games.GameRecord) Breakdown {
	var b Breakdown

	if len(s.genres) > 0 {
		shared := 0
		for _, g := range cand.Genres {
			if _, ok := s.genres[g]; ok {
				shared++
			}
		}
		b.Genre = float64(shared) / float64(len(s.genres)) * GenreWeight
	}

	b.Quality = math.Max(0, (1-math.Abs(s.ref.PositiveRatio-cand.PositiveRatio))*QualityWeight)
	b.Popularity = math.Max(0, (1-math.Abs(s.ref.LogReviews-cand.LogReviews)/popularitySpan)*PopularityWeight)
	b.Total = b.Genre + b.Quality + b.Popularity
	return b
}

// sharesGenre reports whether cand has at least one reference genre.
func (s *scorer) sharesGenre(cand *games.GameRecord) bool {
	for _, g := range cand.Genres {
		if _, ok := s.genres[g]; ok {
			return true
		}
	}
	return false
}
