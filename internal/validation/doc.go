// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata and is safe for concurrent use. Error field names are taken from
// the query tag, then the json tag, so messages name the parameter the
// client actually sent ("min_games must be at least 200").
//
// Custom tags:
//   - notblank: string must contain a non-space character
//
// Example:
//
//	type GenreQuery struct {
//	    MinGames int `query:"min_games" validate:"min=200,max=10000"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError() // Code "VALIDATION_FAILED"
//	}
package validation
