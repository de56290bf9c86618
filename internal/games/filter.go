// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package games

import (
	"unicode"
	"unicode/utf8"

	"github.com/Phantosirius/steam-dashboard/internal/cache"
)

// Reason names why the quality filter rejected a record.
type Reason string

const (
	ReasonNSFW          Reason = "nsfw"
	ReasonFewReviews    Reason = "few_reviews"
	ReasonTooManyGenres Reason = "too_many_genres"
	ReasonLongName      Reason = "long_name"
	ReasonShoutingName  Reason = "shouting_name"
)

// Reasons lists every rejection reason in evaluation order.
var Reasons = []Reason{
	ReasonNSFW,
	ReasonFewReviews,
	ReasonTooManyGenres,
	ReasonLongName,
	ReasonShoutingName,
}

// NSFWKeywords are matched as case-insensitive substrings of the name and
// raw genre text. Substring matching is deliberately blunt: "cum" also hits
// "Cumulative".
var NSFWKeywords = []string{
	"sex", "sexual", "adult", "hentai", "nsfw", "erotic", "porn",
	"pussy", "boob", "dick", "naked", "nude", "orgasm",
	"futa", "fetish", "milf", "bdsm", "bondage", "deepthroat",
	"sperm", "vagina", "cum", "penetrat", "tits", "stripper",
}

var defaultNSFWMatcher = cache.NewKeywordMatcher(NSFWKeywords)

// FilterRules holds the load-time quality thresholds.
type FilterRules struct {
	// MinReviews rejects records with fewer total reviews.
	MinReviews int64
	// MaxGenres rejects records with more parsed genres.
	MaxGenres int
	// MaxNameLength rejects names with this many characters or more.
	MaxNameLength int
	// MaxUppercase rejects names with this many upper-case letters or more.
	MaxUppercase int
	// ExcludeNSFW enables the keyword check.
	ExcludeNSFW bool

	// Keywords overrides the NSFW keyword automaton; nil uses NSFWKeywords.
	Keywords *cache.KeywordMatcher
}

// DefaultFilterRules returns the standard thresholds: 50 reviews, 6 genres,
// 80 characters and 20 upper-case letters.
func DefaultFilterRules() FilterRules {
	return FilterRules{
		MinReviews:    50,
		MaxGenres:     6,
		MaxNameLength: 80,
		MaxUppercase:  20,
		ExcludeNSFW:   true,
	}
}

// Check reports whether rec passes every rule. On rejection it returns the
// first failing rule. rec must already be derived and parsed.
func (f FilterRules) Check(rec *GameRecord) (Reason, bool) {
	if f.ExcludeNSFW && f.IsNSFW(rec.Name, rec.RawGenres) {
		return ReasonNSFW, false
	}
	if rec.TotalReviews < f.MinReviews {
		return ReasonFewReviews, false
	}
	if len(rec.Genres) > f.MaxGenres {
		return ReasonTooManyGenres, false
	}
	if utf8.RuneCountInString(rec.Name) >= f.MaxNameLength {
		return ReasonLongName, false
	}
	if countUpper(rec.Name) >= f.MaxUppercase {
		return ReasonShoutingName, false
	}
	return "", true
}

// IsNSFW tests the name and raw genre text against the keyword list.
func (f FilterRules) IsNSFW(name, rawGenres string) bool {
	m := f.Keywords
	if m == nil {
		m = defaultNSFWMatcher
	}
	return m.Contains(name + " " + rawGenres)
}

func countUpper(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}
