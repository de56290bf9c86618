// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package games

import (
	"math"
	"strings"
	"testing"

	"github.com/Phantosirius/steam-dashboard/internal/cache"
)

func newRecord(name, rawGenres string, positive, negative int64) *GameRecord {
	rec := &GameRecord{
		Name:      name,
		RawGenres: rawGenres,
		Genres:    ParseGenres(rawGenres),
		Positive:  positive,
		Negative:  negative,
	}
	rec.Derive()
	return rec
}

func TestFilterRules_Check(t *testing.T) {
	t.Parallel()

	rules := DefaultFilterRules()

	tests := []struct {
		name       string
		rec        *GameRecord
		wantReason Reason
		wantKeep   bool
	}{
		{"clean record", newRecord("Portal 2", "Puzzle, Action", 900, 100), "", true},
		{"nsfw in name", newRecord("Hentai Puzzle", "Puzzle", 900, 100), ReasonNSFW, false},
		{"nsfw in genres", newRecord("Quiet Night", "Casual, Sexual Content", 900, 100), ReasonNSFW, false},
		{"nsfw substring imprecision", newRecord("Cumulative Tactics", "Strategy", 900, 100), ReasonNSFW, false},
		{"too few reviews", newRecord("Tiny Game", "Indie", 30, 19), ReasonFewReviews, false},
		{"exactly fifty reviews", newRecord("Tiny Game", "Indie", 30, 20), "", true},
		{"seven genres", newRecord("Tagged", "A1, B2, C3, D4, E5, F6, G7", 900, 100), ReasonTooManyGenres, false},
		{"six genres", newRecord("Tagged", "A1, B2, C3, D4, E5, F6", 900, 100), "", true},
		{"long name", newRecord(strings.Repeat("x", 80), "Indie", 900, 100), ReasonLongName, false},
		{"name of 79 characters", newRecord(strings.Repeat("x", 79), "Indie", 900, 100), "", true},
		{"shouting name", newRecord(strings.Repeat("X", 20), "Indie", 900, 100), ReasonShoutingName, false},
		{"19 capitals", newRecord(strings.Repeat("X", 19), "Indie", 900, 100), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reason, keep := rules.Check(tt.rec)
			if keep != tt.wantKeep || reason != tt.wantReason {
				t.Errorf("Check(%q) = (%q, %v), want (%q, %v)", tt.rec.Name, reason, keep, tt.wantReason, tt.wantKeep)
			}
		})
	}
}

func TestFilterRules_NSFWDisabled(t *testing.T) {
	t.Parallel()

	rules := DefaultFilterRules()
	rules.ExcludeNSFW = false

	if _, keep := rules.Check(newRecord("Adult Swim Games", "Action", 900, 100)); !keep {
		t.Error("record should pass when the NSFW check is disabled")
	}
}

func TestFilterRules_CustomKeywords(t *testing.T) {
	t.Parallel()

	rules := DefaultFilterRules()
	rules.Keywords = cache.NewKeywordMatcher([]string{"gambling"})

	if reason, keep := rules.Check(newRecord("Casino Gambling Sim", "Simulation", 900, 100)); keep || reason != ReasonNSFW {
		t.Errorf("Check() = (%q, %v), want nsfw rejection", reason, keep)
	}
	if _, keep := rules.Check(newRecord("Hentai Puzzle", "Puzzle", 900, 100)); !keep {
		t.Error("custom keyword list should replace the default one")
	}
}

func TestDerive_SaturatesTotal(t *testing.T) {
	t.Parallel()

	rec := &GameRecord{Name: "Huge", Positive: math.MaxInt64, Negative: 10}
	rec.Derive()

	if rec.TotalReviews != math.MaxInt64 {
		t.Errorf("TotalReviews = %d, want MaxInt64", rec.TotalReviews)
	}
	if rec.PositiveRatio < 0 || rec.PositiveRatio > 1 {
		t.Errorf("PositiveRatio = %v outside [0,1]", rec.PositiveRatio)
	}
}

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pos, neg  int64
		wantTotal int64
		wantRatio float64
	}{
		{"typical", 90, 10, 100, 0.9},
		{"no reviews", 0, 0, 0, 0},
		{"all positive", 50, 0, 50, 1},
		{"negative input clamped", -5, 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &GameRecord{Positive: tt.pos, Negative: tt.neg, TotalReviews: 999999}
			rec.Derive()

			if rec.TotalReviews != tt.wantTotal {
				t.Errorf("TotalReviews = %d, want %d", rec.TotalReviews, tt.wantTotal)
			}
			if rec.TotalReviews != rec.Positive+rec.Negative {
				t.Error("TotalReviews must equal Positive + Negative")
			}
			if rec.PositiveRatio < 0 || rec.PositiveRatio > 1 {
				t.Errorf("PositiveRatio = %v outside [0,1]", rec.PositiveRatio)
			}
			if rec.PositiveRatio != tt.wantRatio {
				t.Errorf("PositiveRatio = %v, want %v", rec.PositiveRatio, tt.wantRatio)
			}
			if rec.Name != UnknownName {
				t.Errorf("Name = %q, want %q for a missing name", rec.Name, UnknownName)
			}
		})
	}
}
