// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package games

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FreeToPlay is the canonical token every free-to-play spelling collapses to.
const FreeToPlay = "free to play"

var (
	// Matches single- or double-quoted items of a list literal.
	quotedItem = regexp.MustCompile(`'(.*?)'|"(.*?)"`)
	// Matches any of the supported genre delimiters.
	genreDelimiters = regexp.MustCompile(`[,;/|]`)
)

// ParseGenres converts a raw genre field into normalized, deduplicated
// genre tokens in first-seen order. It never fails: malformed or empty
// input yields an empty slice.
//
// "['Action', 'Indie']" -> [Action Indie].
// "RPG/Action" -> [RPG Action].
// "Free-to-Play, F2P" -> [free to play].
func ParseGenres(raw string) []string {
	return ParseGenreList(splitGenres(raw))
}

// ParseGenreList normalizes an already split list of genre tokens.
func ParseGenreList(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		g := NormalizeGenre(tok)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// splitGenres extracts raw tokens from a list literal or delimited string.
func splitGenres(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if strings.TrimSpace(s[1:len(s)-1]) == "" {
			return nil
		}
		var items []string
		for _, m := range quotedItem.FindAllStringSubmatch(s, -1) {
			item := m[1]
			if item == "" {
				item = m[2]
			}
			if item != "" {
				items = append(items, item)
			}
		}
		// A list literal without quoted items holds no genres.
		return items
	}

	parts := genreDelimiters.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// NormalizeGenre canonicalizes one genre token. Blank input returns "".
func NormalizeGenre(token string) string {
	s := strings.TrimSpace(token)
	if s == "" {
		return ""
	}

	low := strings.ToLower(s)
	if strings.Contains(low, "free to play") || strings.Contains(low, "free-to-play") || strings.Contains(low, "f2p") {
		return FreeToPlay
	}

	switch low {
	case "rpg", "mmorpg":
		return strings.ToUpper(low)
	}

	// cases.Caser is stateful, one per call
	return cases.Title(language.Und).String(s)
}
