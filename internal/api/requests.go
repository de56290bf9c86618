// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package api

// Request structs for query parameter validation.
//
// Field names in validation errors come from the query tag so clients see
// the parameter they sent.

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	MaxQueryLength     = 200
)

// MaxPopularLimit caps the popular games list.
const MaxPopularLimit = 100

// SearchRequest holds the parameters of GET /games.
type SearchRequest struct {
	Query string `query:"q" validate:"max=200"`
	Limit int    `query:"limit" validate:"min=1,max=100"`
}

// RecommendRequest holds the parameters of GET /recommendations.
type RecommendRequest struct {
	Name  string `query:"name" validate:"notblank,max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1"`
}

// GenreRequest holds the parameters of GET /market/genres. The configured
// floor and ceiling are checked by the handler.
type GenreRequest struct {
	MinGames int `query:"min_games" validate:"min=1"`
}

// PopularRequest holds the parameters of GET /market/popular.
type PopularRequest struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}
