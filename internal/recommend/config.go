// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/Phantosirius/steam-dashboard/internal/config"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Thresholds controls when the pipeline widens its candidate pool.
	Thresholds ThresholdConfig `json:"thresholds"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// ThresholdConfig contains the pool-size fallback thresholds.
type ThresholdConfig struct {
	// CategoryMinCandidates is the smallest same-category pool that is kept.
	// A smaller pool falls back to every other game.
	// Default: 20.
	CategoryMinCandidates int `json:"category_min_candidates"`

	// OverlapMinCandidates is the smallest genre-overlap pool that is kept.
	// A smaller pool falls back to the pool left by the category step.
	// Default: 5.
	OverlapMinCandidates int `json:"overlap_min_candidates"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the number of recommendations when the request does not say.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested number of recommendations.
	// Default: 5.
	MaxLimit int `json:"max_limit"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the standard pipeline settings.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			CategoryMinCandidates: 20,
			OverlapMinCandidates:  5,
		},
		Limits: LimitsConfig{
			DefaultLimit: 5,
			MaxLimit:     5,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// ConfigFromSettings maps the recommend section of the application config.
// Zero values keep the defaults.
func ConfigFromSettings(s config.RecommendConfig) *Config {
	cfg := DefaultConfig()
	if s.CategoryMinCandidates > 0 {
		cfg.Thresholds.CategoryMinCandidates = s.CategoryMinCandidates
	}
	if s.OverlapMinCandidates > 0 {
		cfg.Thresholds.OverlapMinCandidates = s.OverlapMinCandidates
	}
	if s.Limit > 0 {
		cfg.Limits.DefaultLimit = s.Limit
		cfg.Limits.MaxLimit = s.Limit
	}
	cfg.Cache.Enabled = s.CacheEnabled
	if s.CacheTTL > 0 {
		cfg.Cache.TTL = s.CacheTTL
	}
	if s.CacheMaxEntries > 0 {
		cfg.Cache.MaxEntries = s.CacheMaxEntries
	}
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Thresholds.CategoryMinCandidates < 0 {
		return fmt.Errorf("thresholds.category_min_candidates must be non-negative, got %d", c.Thresholds.CategoryMinCandidates)
	}
	if c.Thresholds.OverlapMinCandidates < 0 {
		return fmt.Errorf("thresholds.overlap_min_candidates must be non-negative, got %d", c.Thresholds.OverlapMinCandidates)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only
	return &Config{
		Thresholds: c.Thresholds,
		Limits:     c.Limits,
		Cache:      c.Cache,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Cache cacheJSON `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
