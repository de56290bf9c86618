// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package config

import "time"

// DefaultDatasetSource is the published cleaned Steam games export.
const DefaultDatasetSource = "https://drive.google.com/uc?export=download&id=1qbrm-9C9PQ861r6D0-M03HFU036iOjNS"

// Config holds all service configuration.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("invalid configuration")
//	}
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Filters   FilterConfig    `koanf:"filters"`
	Recommend RecommendConfig `koanf:"recommend"`
	Market    MarketConfig    `koanf:"market"`
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig describes where the games table comes from and which
// release years are analysed.
type DatasetConfig struct {
	// Source is a local file path or an http(s) URL to the CSV export.
	Source string `koanf:"source"`

	// FetchTimeout bounds a remote download.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// FirstYear and FinalYear bound the analysis window (inclusive).
	FirstYear int `koanf:"first_year"`
	FinalYear int `koanf:"final_year"`

	// ReloadInterval reloads the dataset periodically. Zero loads once.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// FilterConfig holds the data-quality thresholds applied at load time.
type FilterConfig struct {
	MinReviews    int  `koanf:"min_reviews"`
	MaxGenres     int  `koanf:"max_genres"`
	MaxNameLength int  `koanf:"max_name_length"`
	MaxUppercase  int  `koanf:"max_uppercase"`
	ExcludeNSFW   bool `koanf:"exclude_nsfw"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	// CategoryMinCandidates is the pool size below which category narrowing is dropped.
	CategoryMinCandidates int `koanf:"category_min_candidates"`

	// OverlapMinCandidates is the pool size below which the genre-overlap filter is dropped.
	OverlapMinCandidates int `koanf:"overlap_min_candidates"`

	// Limit is the maximum number of recommendations returned.
	Limit int `koanf:"limit"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// MarketConfig tunes the genre and popularity rollups.
type MarketConfig struct {
	DefaultMinGames   int   `koanf:"default_min_games"`
	MinGamesFloor     int   `koanf:"min_games_floor"`
	MinGamesCeiling   int   `koanf:"min_games_ceiling"`
	QualityMinReviews int64 `koanf:"quality_min_reviews"`
	TopN              int   `koanf:"top_n"`
	PopularLimit      int   `koanf:"popular_limit"`
	ScatterMinReviews int64 `koanf:"scatter_min_reviews"`
	PriceBucketWidth  int   `koanf:"price_bucket_width"`
	PriceHistogramMax int   `koanf:"price_histogram_max"`
}

// DatabaseConfig holds DuckDB settings for the price analytics store.
type DatabaseConfig struct {
	// Path is the database file, or ":memory:" for an in-process store.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsRemoteSource reports whether the dataset is fetched over HTTP.
func (c *DatasetConfig) IsRemoteSource() bool {
	return hasHTTPScheme(c.Source)
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return joinHostPort(c.Host, c.Port)
}
