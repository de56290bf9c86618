// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateFilters(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateMarket(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDataset validates the dataset source and analysis window
func (c *Config) validateDataset() error {
	source := strings.TrimSpace(c.Dataset.Source)
	if source == "" {
		return fmt.Errorf("DATASET_SOURCE is required")
	}

	if c.Dataset.IsRemoteSource() {
		if err := validateHTTPURL(source, "DATASET_SOURCE"); err != nil {
			return err
		}
		if c.Dataset.FetchTimeout <= 0 {
			return fmt.Errorf("DATASET_FETCH_TIMEOUT must be positive for remote sources")
		}
	}

	if c.Dataset.FirstYear <= 0 || c.Dataset.FinalYear <= 0 {
		return fmt.Errorf("DATASET_FIRST_YEAR and DATASET_FINAL_YEAR must be positive")
	}
	if c.Dataset.FirstYear > c.Dataset.FinalYear {
		return fmt.Errorf("DATASET_FIRST_YEAR (%d) must not be after DATASET_FINAL_YEAR (%d)",
			c.Dataset.FirstYear, c.Dataset.FinalYear)
	}
	if c.Dataset.ReloadInterval < 0 {
		return fmt.Errorf("DATASET_RELOAD must not be negative")
	}
	return nil
}

// validateHTTPURL checks scheme and host of a remote dataset URL.
// Query strings are allowed: export links carry their file id there.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}

// validateFilters validates the load-time quality thresholds
func (c *Config) validateFilters() error {
	f := c.Filters
	if f.MinReviews < 0 {
		return fmt.Errorf("FILTER_MIN_REVIEWS must not be negative")
	}
	if f.MaxGenres < 1 {
		return fmt.Errorf("FILTER_MAX_GENRES must be at least 1")
	}
	if f.MaxNameLength < 1 {
		return fmt.Errorf("FILTER_MAX_NAME_LENGTH must be at least 1")
	}
	if f.MaxUppercase < 1 {
		return fmt.Errorf("FILTER_MAX_UPPERCASE must be at least 1")
	}
	return nil
}

// validateRecommend validates the recommendation pipeline settings
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.CategoryMinCandidates < 0 || r.OverlapMinCandidates < 0 {
		return fmt.Errorf("RECOMMEND_CATEGORY_MIN and RECOMMEND_OVERLAP_MIN must not be negative")
	}
	if r.Limit < 1 {
		return fmt.Errorf("RECOMMEND_LIMIT must be at least 1")
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be at least 1 when the cache is enabled")
		}
	}
	return nil
}

// validateMarket validates the market rollup settings
func (c *Config) validateMarket() error {
	m := c.Market
	if m.MinGamesFloor < 1 || m.MinGamesCeiling < m.MinGamesFloor {
		return fmt.Errorf("MARKET_MIN_GAMES_FLOOR must be at least 1 and not above MARKET_MIN_GAMES_CEILING")
	}
	if m.DefaultMinGames < m.MinGamesFloor || m.DefaultMinGames > m.MinGamesCeiling {
		return fmt.Errorf("MARKET_MIN_GAMES must be between %d and %d", m.MinGamesFloor, m.MinGamesCeiling)
	}
	if m.TopN < 1 || m.PopularLimit < 1 {
		return fmt.Errorf("MARKET_TOP_N and MARKET_POPULAR_LIMIT must be at least 1")
	}
	if m.QualityMinReviews < 0 || m.ScatterMinReviews < 0 {
		return fmt.Errorf("MARKET_QUALITY_MIN_REVIEWS and MARKET_SCATTER_MIN_REVIEWS must not be negative")
	}
	if m.PriceBucketWidth < 1 || m.PriceHistogramMax < m.PriceBucketWidth {
		return fmt.Errorf("MARKET_PRICE_BUCKET_WIDTH must be at least 1 and not above MARKET_PRICE_HISTOGRAM_MAX")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateRateLimits validates rate limiting bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
