// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

var (
	// ErrInsufficientData is returned when no recommendation can be made:
	// the reference is unknown or no other game is left to score.
	ErrInsufficientData = errors.New("insufficient data for recommendation")

	// ErrGameNotFound is returned when no game carries the requested name.
	// It matches ErrInsufficientData under errors.Is.
	ErrGameNotFound = fmt.Errorf("game not found: %w", ErrInsufficientData)
)

// Request asks for games similar to a reference game.
type Request struct {
	// Name is the exact display name of the reference game.
	Name string `json:"name" validate:"notblank,max=200"`

	// Limit is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultLimit if zero.
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Breakdown is the similarity score of one candidate against the reference.
type Breakdown struct {
	// Genre is the share of the reference genres the candidate also has, scaled to 50.
	Genre float64 `json:"genre"`

	// Quality is the closeness of positive review ratios, scaled to 30.
	Quality float64 `json:"quality"`

	// Popularity is the closeness of log review counts, scaled to 20.
	Popularity float64 `json:"popularity"`

	// Total is Genre + Quality + Popularity.
	Total float64 `json:"total"`
}

// ScoredGame is a recommended game with its score.
type ScoredGame struct {
	Game  games.GameRecord `json:"game"`
	Score Breakdown        `json:"score"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Reference is the game the recommendations are similar to.
	Reference games.GameRecord `json:"reference"`

	// Category is the classifier label of the reference.
	Category games.Category `json:"category"`

	// Items is ranked by descending total score.
	Items []ScoredGame `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// CatalogVersion identifies the dataset the response was computed from.
	CatalogVersion string `json:"catalog_version"`

	// PoolSize is the number of games other than the reference.
	PoolSize int `json:"pool_size"`

	// CategoryPoolSize is the number of candidates sharing the reference category.
	CategoryPoolSize int `json:"category_pool_size"`

	// OverlapPoolSize is the number of candidates sharing at least one
	// genre, counted within the pool left by the category step.
	OverlapPoolSize int `json:"overlap_pool_size"`

	// ScoredCount is the number of candidates actually scored.
	ScoredCount int `json:"scored_count"`

	// CategoryFallback is set when category narrowing left too few candidates.
	CategoryFallback bool `json:"category_fallback"`

	// OverlapFallback is set when the genre filter left too few candidates.
	OverlapFallback bool `json:"overlap_fallback"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Metrics contains recommendation engine counters for observability.
type Metrics struct {
	RequestCount      int64 `json:"request_count"`
	CacheHits         int64 `json:"cache_hits"`
	CacheMisses       int64 `json:"cache_misses"`
	NotFoundCount     int64 `json:"not_found_count"`
	InsufficientCount int64 `json:"insufficient_count"`
	ErrorCount        int64 `json:"error_count"`

	// CategoryFallbacks counts requests that widened past the category pool.
	CategoryFallbacks int64 `json:"category_fallbacks"`

	// OverlapFallbacks counts requests that dropped the genre filter.
	OverlapFallbacks int64 `json:"overlap_fallbacks"`

	// AverageLatencyMS is the mean latency of computed (not cached) responses.
	AverageLatencyMS float64 `json:"average_latency_ms"`

	// CachedEntries is the current response cache size.
	CachedEntries int `json:"cached_entries"`
}
