// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/steam-dashboard/config.yaml",
	"/etc/steam-dashboard/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They are loaded first, then
// overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:       DefaultDatasetSource,
			FetchTimeout: 2 * time.Minute,
			FirstYear:    2014,
			FinalYear:    2024,
		},
		Filters: FilterConfig{
			MinReviews:    50,
			MaxGenres:     6,
			MaxNameLength: 80,
			MaxUppercase:  20,
			ExcludeNSFW:   true,
		},
		Recommend: RecommendConfig{
			CategoryMinCandidates: 20,
			OverlapMinCandidates:  5,
			Limit:                 5,
			CacheEnabled:          true,
			CacheTTL:              10 * time.Minute,
			CacheMaxEntries:       1000,
		},
		Market: MarketConfig{
			DefaultMinGames:   500,
			MinGamesFloor:     200,
			MinGamesCeiling:   10000,
			QualityMinReviews: 1_000_000,
			TopN:              10,
			PopularLimit:      20,
			ScatterMinReviews: 20_000,
			PriceBucketWidth:  5,
			PriceHistogramMax: 100,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Defaults returns the built-in configuration without reading any file or
// environment variable.
func Defaults() *Config {
	return defaultConfig()
}

// Load loads configuration with Koanf v2 from layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file
//  3. Environment variables: override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DATASET_SOURCE -> dataset.source, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Dataset
	"dataset_source":        "dataset.source",
	"dataset_fetch_timeout": "dataset.fetch_timeout",
	"dataset_first_year":    "dataset.first_year",
	"dataset_final_year":    "dataset.final_year",
	"dataset_reload":        "dataset.reload_interval",

	// Quality filters
	"filter_min_reviews":     "filters.min_reviews",
	"filter_max_genres":      "filters.max_genres",
	"filter_max_name_length": "filters.max_name_length",
	"filter_max_uppercase":   "filters.max_uppercase",
	"filter_exclude_nsfw":    "filters.exclude_nsfw",

	// Recommendation pipeline
	"recommend_category_min":      "recommend.category_min_candidates",
	"recommend_overlap_min":       "recommend.overlap_min_candidates",
	"recommend_limit":             "recommend.limit",
	"recommend_cache_enabled":     "recommend.cache_enabled",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",

	// Market rollups
	"market_min_games":           "market.default_min_games",
	"market_min_games_floor":     "market.min_games_floor",
	"market_min_games_ceiling":   "market.min_games_ceiling",
	"market_quality_min_reviews": "market.quality_min_reviews",
	"market_top_n":               "market.top_n",
	"market_popular_limit":       "market.popular_limit",
	"market_scatter_min_reviews": "market.scatter_min_reviews",
	"market_price_bucket_width":  "market.price_bucket_width",
	"market_price_histogram_max": "market.price_histogram_max",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are ignored, so unrelated environment
// (PATH, HOME) never leaks into the configuration.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
