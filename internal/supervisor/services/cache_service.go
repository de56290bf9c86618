// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCleanupInterval is how often expired cache entries are dropped.
const DefaultCleanupInterval = time.Minute

// CacheCleaner drops expired entries and reports how many were removed.
type CacheCleaner interface {
	CleanupCache() int
}

// CacheJanitorService periodically expires entries from the TTL caches
// (recommendations and market reports). Expired entries are never served,
// but without a sweep they hold memory until evicted by size.
type CacheJanitorService struct {
	caches   map[string]CacheCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor over the named caches. A
// non-positive interval uses DefaultCleanupInterval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(caches map[string]CacheCleaner, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CacheJanitorService{
		caches:   caches,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements the suture.Service interface.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep cleans every cache once and returns the total removed.
func (s *CacheJanitorService) sweep() int {
	total := 0
	for name, c := range s.caches {
		removed := c.CleanupCache()
		if removed > 0 {
			s.logger.Debug().Str("cache", name).Int("removed", removed).Msg("expired cache entries")
		}
		total += removed
	}
	return total
}

// String returns the service name for logging.
func (s *CacheJanitorService) String() string {
	return s.name
}
