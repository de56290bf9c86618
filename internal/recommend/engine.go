// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/cache"
	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// Engine produces content-based recommendations over a catalog.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config   *Config
	configMu sync.RWMutex
	logger   zerolog.Logger

	// Metrics
	requestCount      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	notFoundCount     atomic.Int64
	insufficientCount atomic.Int64
	errorCount        atomic.Int64
	categoryFallbacks atomic.Int64
	overlapFallbacks  atomic.Int64
	computedCount     atomic.Int64
	computedLatencyUS atomic.Int64

	// Response cache, keyed by catalog version, reference name and limit
	cache *cache.LRU[*Response]
}

// pipeline holds the intermediate pools of one request.
type pipeline struct {
	scorer           *scorer
	pool             []int
	categoryPool     int
	overlapPool      int
	working          []int
	categoryFallback bool
	overlapFallback  bool
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Recommend returns the games most similar to the game named in req.
//
// The reference is the first record whose name equals req.Name exactly.
// Candidates are every other record, narrowed to the reference category
// when enough remain, then to games sharing a genre when enough remain.
// Scores are sorted descending with ties kept in catalog order.
//
// ErrGameNotFound is returned for an unknown name and ErrInsufficientData
// when no candidate is left.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, catalog *games.Catalog, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	// Prepare request
	req = e.prepareRequest(ctx, req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if catalog.Len() == 0 {
		return nil, e.fail(logger, start, nil, fmt.Errorf("empty catalog: %w", ErrInsufficientData))
	}

	// Check cache early return
	cacheKey := e.cacheKey(catalog, req)
	if resp := e.tryGetCachedResponse(cacheKey, req, start, logger); resp != nil {
		return resp, nil
	}

	refIdx := catalog.IndexOfName(req.Name)
	if refIdx < 0 {
		return nil, e.fail(logger, start, nil, fmt.Errorf("%w: %q", ErrGameNotFound, req.Name))
	}
	ref := &catalog.Records[refIdx]

	p := e.selectCandidates(catalog, refIdx)
	if len(p.working) == 0 {
		return nil, e.fail(logger, start, p, fmt.Errorf("no candidates besides %q: %w", ref.Name, ErrInsufficientData))
	}

	if err := ctx.Err(); err != nil {
		return nil, e.fail(logger, start, p, err)
	}

	// Score and rank items
	items := e.scoreAndRank(catalog, p, req.Limit)

	// Build and cache response
	resp := e.buildResponse(catalog, ref, items, p, req, start)
	e.cacheResponse(cacheKey, resp)
	e.recordSuccess(p, start)

	logger.Debug().
		Int("pool", len(p.pool)).
		Int("scored", len(p.working)).
		Int("returned", len(items)).
		Bool("category_fallback", p.categoryFallback).
		Bool("overlap_fallback", p.overlapFallback).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and picks a request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	limits := e.getConfig().Limits
	if req.Limit <= 0 {
		req.Limit = limits.DefaultLimit
	}
	if req.Limit > limits.MaxLimit {
		req.Limit = limits.MaxLimit
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("reference", req.Name).
		Int("limit", req.Limit).
		Logger()
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordRecommendCache(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()

	metrics.RecordRecommendation("ok", time.Since(start), false, false)
	logger.Debug().Msg("cache hit")
	return resp
}

// selectCandidates runs the category and genre-overlap narrowing steps.
func (e *Engine) selectCandidates(catalog *games.Catalog, refIdx int) *pipeline {
	thresholds := e.getConfig().Thresholds
	ref := &catalog.Records[refIdx]
	p := &pipeline{scorer: newScorer(ref)}

	p.pool = make([]int, 0, len(catalog.Records)-1)
	for i := range catalog.Records {
		if i != refIdx {
			p.pool = append(p.pool, i)
		}
	}

	stage := filterPool(p.pool, func(i int) bool {
		return catalog.Records[i].Category == ref.Category
	})
	p.categoryPool = len(stage)
	if len(stage) < thresholds.CategoryMinCandidates {
		p.categoryFallback = true
		stage = p.pool
	}

	overlap := filterPool(stage, func(i int) bool {
		return p.scorer.sharesGenre(&catalog.Records[i])
	})
	p.overlapPool = len(overlap)
	if len(overlap) < thresholds.OverlapMinCandidates {
		p.overlapFallback = true
		overlap = stage
	}

	p.working = overlap
	return p
}

func filterPool(pool []int, keep func(int) bool) []int {
	out := make([]int, 0, len(pool))
	for _, i := range pool {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// scoreAndRank scores the working set and keeps the best limit items.
func (e *Engine) scoreAndRank(catalog *games.Catalog, p *pipeline, limit int) []ScoredGame {
	type scored struct {
		idx   int
		score Breakdown
	}

	all := make([]scored, len(p.working))
	for n, i := range p.working {
		all[n] = scored{idx: i, score: p.scorer.score(&catalog.Records[i])}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score.Total > all[j].score.Total
	})

	if len(all) > limit {
		all = all[:limit]
	}

	items := make([]ScoredGame, len(all))
	for n, s := range all {
		items[n] = ScoredGame{Game: catalog.Records[s.idx], Score: s.score}
	}
	return items
}

// buildResponse constructs the final response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(catalog *games.Catalog, ref *games.GameRecord, items []ScoredGame, p *pipeline, req Request, start time.Time) *Response {
	return &Response{
		Reference: *ref,
		Category:  ref.Category,
		Items:     items,
		Metadata: ResponseMetadata{
			RequestID:        req.RequestID,
			CatalogVersion:   catalog.Version(),
			PoolSize:         len(p.pool),
			CategoryPoolSize: p.categoryPool,
			OverlapPoolSize:  p.overlapPool,
			ScoredCount:      len(p.working),
			CategoryFallback: p.categoryFallback,
			OverlapFallback:  p.overlapFallback,
			LatencyMS:        time.Since(start).Milliseconds(),
			Timestamp:        time.Now(),
		},
	}
}

// cacheResponse stores the response in cache if enabled.
func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache != nil {
		e.cache.Add(key, copyResponse(resp))
	}
}

// recordSuccess updates counters for a computed response.
func (e *Engine) recordSuccess(p *pipeline, start time.Time) {
	elapsed := time.Since(start)
	e.computedCount.Add(1)
	e.computedLatencyUS.Add(elapsed.Microseconds())
	if p.categoryFallback {
		e.categoryFallbacks.Add(1)
	}
	if p.overlapFallback {
		e.overlapFallbacks.Add(1)
	}
	metrics.RecordRecommendation("ok", elapsed, p.categoryFallback, p.overlapFallback)
}

// fail counts and logs a failed request and returns err unchanged.
func (e *Engine) fail(logger zerolog.Logger, start time.Time, p *pipeline, err error) error {
	outcome := "error"
	switch {
	case errors.Is(err, ErrGameNotFound):
		outcome = "not_found"
		e.notFoundCount.Add(1)
	case errors.Is(err, ErrInsufficientData):
		outcome = "insufficient_data"
		e.insufficientCount.Add(1)
	default:
		e.errorCount.Add(1)
	}

	var categoryFallback, overlapFallback bool
	if p != nil {
		categoryFallback, overlapFallback = p.categoryFallback, p.overlapFallback
	}
	metrics.RecordRecommendation(outcome, time.Since(start), categoryFallback, overlapFallback)

	logger.Debug().Err(err).Str("outcome", outcome).Msg("recommendation failed")
	return err
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount:      e.requestCount.Load(),
		CacheHits:         e.cacheHits.Load(),
		CacheMisses:       e.cacheMisses.Load(),
		NotFoundCount:     e.notFoundCount.Load(),
		InsufficientCount: e.insufficientCount.Load(),
		ErrorCount:        e.errorCount.Load(),
		CategoryFallbacks: e.categoryFallbacks.Load(),
		OverlapFallbacks:  e.overlapFallbacks.Load(),
	}
	if n := e.computedCount.Load(); n > 0 {
		m.AverageLatencyMS = float64(e.computedLatencyUS.Load()) / float64(n) / 1000
	}
	if e.cache != nil {
		m.CachedEntries = e.cache.Len()
	}
	return m
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.getConfig().Clone()
}

// UpdateConfig replaces the thresholds and limits. Cache settings are fixed
// at construction; the cache is cleared so no response computed under the
// old settings is served.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.configMu.Lock()
	e.config = cfg.Clone()
	e.configMu.Unlock()

	e.ClearCache()
	e.logger.Info().Msg("configuration updated")

	return nil
}

// ClearCache removes all cached responses.
func (e *Engine) ClearCache() {
	if e.cache == nil {
		return
	}
	e.cache.Purge()
	e.logger.Debug().Msg("cache cleared")
}

// CleanupCache drops expired responses and returns how many were removed.
func (e *Engine) CleanupCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}

func (e *Engine) getConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config
}

// cacheKey generates a cache key for a request. The catalog version makes
// entries from a replaced dataset unreachable.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(catalog *games.Catalog, req Request) string {
	return "rec:" + catalog.Version() + ":" + strconv.Itoa(req.Limit) + ":" + req.Name
}

// copyResponse creates a copy of a response so cached entries are never
// modified by callers.
func copyResponse(resp *Response) *Response {
	items := make([]ScoredGame, len(resp.Items))
	copy(items, resp.Items)

	return &Response{
		Reference: resp.Reference,
		Category:  resp.Category,
		Items:     items,
		Metadata:  resp.Metadata, // Metadata is a value type, safe to copy
	}
}
