// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package games

import "strings"

// Category is the coarse label assigned by Classify.
type Category string

const (
	CategoryOpenWorld   Category = "Open World / Sandbox"
	CategoryBattleRoyal Category = "Battle Royale"
	CategoryFPS         Category = "FPS"
	CategoryRPG         Category = "RPG"
	CategoryMMO         Category = "MMO / MMORPG"
	CategoryStrategy    Category = "Strategy"
	CategorySimulation  Category = "Simulation"
	CategorySports      Category = "Sports / Racing"
	CategorySurvival    Category = "Survival / Horror"
	CategoryIndie       Category = "Indie / Casual"
	CategoryAction      Category = "Action / Adventure"
	CategoryOther       Category = "Other"
)

// OpenWorldFranchises are name fragments of well-known open-world series.
var OpenWorldFranchises = []string{
	"gta", "grand theft auto", "red dead", "assassin", "far cry",
	"watch dogs", "just cause", "saints row", "mafia", "sleeping dogs",
	"cyberpunk", "elder scrolls", "skyrim", "fallout", "witcher",
	"minecraft", "terraria",
}

type classifyRule struct {
	category      Category
	nameKeywords  []string
	genreKeywords []string
}

// classifyRules is evaluated in order; the first match wins.
var classifyRules = []classifyRule{
	{CategoryOpenWorld, OpenWorldFranchises, []string{"open world", "sandbox", "crime"}},
	{CategoryBattleRoyal, nil, []string{"battle royale"}},
	{CategoryFPS, nil, []string{"fps", "shooter"}},
	{CategoryRPG, nil, []string{"rpg", "jrpg", "role-playing", "action rpg"}},
	{CategoryMMO, nil, []string{"mmo", "mmorpg", "massively multiplayer"}},
	{CategoryStrategy, nil, []string{"strategy", "rts", "4x", "turn-based"}},
	{CategorySimulation, nil, []string{"simulation", "simulator", "city builder", "building", "tycoon"}},
	{CategorySports, nil, []string{"sports", "racing", "football", "soccer", "f1", "basketball"}},
	{CategorySurvival, nil, []string{"survival", "horror", "zombie"}},
	{CategoryIndie, nil, []string{"indie", "casual", "puzzle", "relaxing"}},
	{CategoryAction, nil, []string{"action", "adventure"}},
}

// Categories lists every label in rule order, Other last.
func Categories() []Category {
	out := make([]Category, 0, len(classifyRules)+1)
	for _, r := range classifyRules {
		out = append(out, r.category)
	}
	return append(out, CategoryOther)
}

// Classify assigns exactly one category from a name and its genres.
// Only the open-world rule looks at the name; every rule matches substrings
// of the lower-cased genre tokens.
func Classify(name string, genres []string) Category {
	lowName := strings.ToLower(name)
	lowGenres := make([]string, len(genres))
	for i, g := range genres {
		lowGenres[i] = strings.ToLower(g)
	}

	for _, rule := range classifyRules {
		if containsAny(lowName, rule.nameKeywords) {
			return rule.category
		}
		for _, g := range lowGenres {
			if containsAny(g, rule.genreKeywords) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
