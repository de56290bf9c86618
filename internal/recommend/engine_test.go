// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
)

func newCatalog(source string, records ...games.GameRecord) *games.Catalog {
	return games.NewCatalog(records, source, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		games.DefaultWindow(), games.Stats{Kept: len(records)})
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		e := newTestEngine(t, nil)
		if e.GetConfig().Limits.DefaultLimit != 5 {
			t.Error("expected default config")
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.DefaultLimit = 0
		if _, err := NewEngine(cfg, logging.NewTestLogger(io.Discard)); err == nil {
			t.Error("NewEngine() should reject an invalid config")
		}
	})
}

func TestRecommend_ThreeRecordScenario(t *testing.T) {
	t.Parallel()

	catalog := newCatalog("abc",
		game(1, "A", []string{"RPG"}, 1000, 0.9),
		game(2, "B", []string{"RPG"}, 900, 0.85),
		game(3, "C", []string{"Puzzle"}, 50, 0.5),
	)

	e := newTestEngine(t, nil)
	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "A"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if resp.Reference.Name != "A" || resp.Category != games.CategoryRPG {
		t.Errorf("reference = %s (%s), want A (RPG)", resp.Reference.Name, resp.Category)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(resp.Items))
	}
	if resp.Items[0].Game.Name != "B" || resp.Items[1].Game.Name != "C" {
		t.Errorf("order = %s, %s; want B, C", resp.Items[0].Game.Name, resp.Items[1].Game.Name)
	}
	if resp.Items[0].Score.Genre != 50 || resp.Items[1].Score.Genre != 0 {
		t.Errorf("genre scores = %v, %v; want 50, 0", resp.Items[0].Score.Genre, resp.Items[1].Score.Genre)
	}

	md := resp.Metadata
	if md.PoolSize != 2 || md.CategoryPoolSize != 1 || md.OverlapPoolSize != 1 || md.ScoredCount != 2 {
		t.Errorf("pool sizes = %+v", md)
	}
	if !md.CategoryFallback || !md.OverlapFallback {
		t.Error("both fallbacks should fire on a three-record dataset")
	}
	if md.RequestID == "" || md.CatalogVersion != catalog.Version() {
		t.Errorf("metadata identity = %q, %q", md.RequestID, md.CatalogVersion)
	}
}

func TestRecommend_InsufficientData(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	single := newCatalog("one", game(1, "Only", []string{"RPG"}, 100, 0.9))

	tests := []struct {
		name     string
		catalog  *games.Catalog
		ref      string
		notFound bool
	}{
		{"dataset of size 1", single, "Only", false},
		{"unknown name", single, "Missing", true},
		{"names are case sensitive", single, "only", true},
		{"nil catalog", nil, "Only", false},
		{"empty catalog", newCatalog("empty"), "Only", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Recommend(context.Background(), tt.catalog, Request{Name: tt.ref})
			if resp != nil {
				t.Error("expected no response")
			}
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("error = %v, want ErrInsufficientData", err)
			}
			if got := errors.Is(err, ErrGameNotFound); got != tt.notFound {
				t.Errorf("errors.Is(err, ErrGameNotFound) = %v, want %v", got, tt.notFound)
			}
		})
	}

	m := e.GetMetrics()
	if m.NotFoundCount != 2 || m.InsufficientCount != 3 {
		t.Errorf("metrics = %+v", m)
	}
}

// bigCatalog has 30 RPGs (the first is the reference), 10 strategy games
// sharing the "Indie" genre with it, and 10 unrelated puzzle games.
func bigCatalog() *games.Catalog {
	var records []games.GameRecord
	id := int64(1)
	for i := 0; i < 30; i++ {
		records = append(records, game(id, fmt.Sprintf("RPG %02d", i), []string{"RPG", "Indie"}, 1000+int64(i)*10, 0.9))
		id++
	}
	for i := 0; i < 10; i++ {
		records = append(records, game(id, fmt.Sprintf("Strategy %02d", i), []string{"Strategy", "Indie"}, 1000, 0.9))
		id++
	}
	for i := 0; i < 10; i++ {
		records = append(records, game(id, fmt.Sprintf("Puzzle %02d", i), []string{"Puzzle"}, 1000, 0.9))
		id++
	}
	return newCatalog("big", records...)
}

func TestRecommend_Pipeline(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := bigCatalog()

	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "RPG 00"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	md := resp.Metadata
	if md.CategoryFallback || md.OverlapFallback {
		t.Errorf("no fallback expected: %+v", md)
	}
	if md.PoolSize != 49 || md.CategoryPoolSize != 29 || md.ScoredCount != 29 {
		t.Errorf("pool sizes = %+v", md)
	}
	if len(resp.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(resp.Items))
	}

	for i, item := range resp.Items {
		if item.Game.Name == "RPG 00" {
			t.Error("reference returned as its own recommendation")
		}
		if item.Game.Category != games.CategoryRPG {
			t.Errorf("item %d category = %s, want RPG", i, item.Game.Category)
		}
		if i > 0 && item.Score.Total > resp.Items[i-1].Score.Total {
			t.Error("items not sorted by descending score")
		}
	}

	// Closest review count ranks first
	if resp.Items[0].Game.Name != "RPG 01" {
		t.Errorf("top item = %s, want RPG 01", resp.Items[0].Game.Name)
	}
}

func TestRecommend_OverlapFallbackKeepsCategoryPool(t *testing.T) {
	t.Parallel()

	// The reference is a puzzle game with a unique genre; 20+ Indie/Casual
	// games share its category but none shares a genre.
	var records []games.GameRecord
	records = append(records, game(1, "Ref", []string{"Relaxing Puzzle"}, 1000, 0.9))
	for i := 0; i < 25; i++ {
		records = append(records, game(int64(i+2), fmt.Sprintf("Casual %02d", i), []string{"Casual"}, 1000, 0.9))
	}
	records = append(records, game(100, "Shooter", []string{"FPS"}, 1000, 0.9))
	catalog := newCatalog("fallback", records...)

	e := newTestEngine(t, nil)
	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "Ref"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	md := resp.Metadata
	if md.CategoryFallback {
		t.Error("category pool of 25 should be kept")
	}
	if !md.OverlapFallback || md.OverlapPoolSize != 0 {
		t.Errorf("overlap fallback expected: %+v", md)
	}
	if md.ScoredCount != 25 {
		t.Errorf("ScoredCount = %d, want 25 (category pool, not full pool)", md.ScoredCount)
	}
	for _, item := range resp.Items {
		if item.Game.Name == "Shooter" {
			t.Error("out-of-category game scored after overlap fallback")
		}
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	records := []games.GameRecord{game(1, "Ref", []string{"Action"}, 500, 0.8)}
	for i := 0; i < 8; i++ {
		records = append(records, game(int64(i+2), fmt.Sprintf("Twin %d", i), []string{"Action"}, 500, 0.8))
	}
	catalog := newCatalog("ties", records...)

	e := newTestEngine(t, nil)
	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "Ref"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	for i, item := range resp.Items {
		want := fmt.Sprintf("Twin %d", i)
		if item.Game.Name != want {
			t.Errorf("item %d = %s, want %s", i, item.Game.Name, want)
		}
	}
}

func TestRecommend_DuplicateNameUsesFirst(t *testing.T) {
	t.Parallel()

	catalog := newCatalog("dupes",
		game(1, "Same", []string{"RPG"}, 1000, 0.9),
		game(2, "Same", []string{"Puzzle"}, 10, 0.1),
		game(3, "Other", []string{"RPG"}, 1000, 0.9),
	)

	e := newTestEngine(t, nil)
	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "Same"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if resp.Reference.ID != 1 {
		t.Errorf("reference ID = %d, want 1", resp.Reference.ID)
	}
	// The second "Same" is a different record and remains a candidate
	if len(resp.Items) != 2 {
		t.Errorf("got %d items, want 2", len(resp.Items))
	}
}

func TestRecommend_Limit(t *testing.T) {
	t.Parallel()

	catalog := bigCatalog()

	tests := []struct {
		name  string
		cfg   *Config
		limit int
		want  int
	}{
		{"default", nil, 0, 5},
		{"smaller", nil, 2, 2},
		{"capped at max", nil, 50, 5},
		{"raised max", &Config{
			Thresholds: DefaultConfig().Thresholds,
			Limits:     LimitsConfig{DefaultLimit: 5, MaxLimit: 10},
		}, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, tt.cfg)
			resp, err := e.Recommend(context.Background(), catalog, Request{Name: "RPG 05", Limit: tt.limit})
			if err != nil {
				t.Fatalf("Recommend() error: %v", err)
			}
			if len(resp.Items) != tt.want {
				t.Errorf("got %d items, want %d", len(resp.Items), tt.want)
			}
		})
	}
}

func TestRecommend_Cache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := bigCatalog()
	ctx := context.Background()

	first, err := e.Recommend(ctx, catalog, Request{Name: "RPG 00"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request should not hit the cache")
	}

	second, err := e.Recommend(ctx, catalog, Request{Name: "RPG 00"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second request should hit the cache")
	}
	if second.Items[0].Game.ID != first.Items[0].Game.ID {
		t.Error("cached response differs")
	}

	// Mutating a response must not affect the cache
	second.Items[0].Game.Name = "tampered"
	third, _ := e.Recommend(ctx, catalog, Request{Name: "RPG 00"})
	if third.Items[0].Game.Name == "tampered" {
		t.Error("cache entry was modified through a response")
	}

	// A reloaded catalog with the same contents is a new version
	reloaded := games.NewCatalog(catalog.Records, catalog.Source, catalog.LoadedAt.Add(time.Second), catalog.Window, catalog.Stats)
	fresh, _ := e.Recommend(ctx, reloaded, Request{Name: "RPG 00"})
	if fresh.Metadata.CacheHit {
		t.Error("reloaded catalog should not be served from cache")
	}

	m := e.GetMetrics()
	if m.CacheHits != 2 || m.CacheMisses != 2 || m.RequestCount != 4 {
		t.Errorf("metrics = %+v", m)
	}

	e.ClearCache()
	if e.GetMetrics().CachedEntries != 0 {
		t.Error("ClearCache() left entries")
	}
}

func TestRecommend_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg)
	catalog := bigCatalog()

	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(context.Background(), catalog, Request{Name: "RPG 00"})
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Error("cache disabled but response marked as hit")
		}
	}
	if e.CleanupCache() != 0 {
		t.Error("CleanupCache() with no cache should be a no-op")
	}
}

func TestRecommend_CanceledContext(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recommend(ctx, bigCatalog(), Request{Name: "RPG 00"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if e.GetMetrics().ErrorCount != 1 {
		t.Error("canceled request should count as an error")
	}
}

func TestRecommend_RequestIDFromContext(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := logging.ContextWithRequestID(context.Background(), "req-123")

	resp, err := e.Recommend(ctx, bigCatalog(), Request{Name: "RPG 00"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if resp.Metadata.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", resp.Metadata.RequestID)
	}
}

func TestRecommend_Concurrent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := bigCatalog()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("RPG %02d", n%30)
			if _, err := e.Recommend(context.Background(), catalog, Request{Name: name}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Recommend() error: %v", err)
	}
	if e.GetMetrics().RequestCount != 40 {
		t.Errorf("RequestCount = %d, want 40", e.GetMetrics().RequestCount)
	}
}

func TestUpdateConfig(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := bigCatalog()

	if _, err := e.Recommend(context.Background(), catalog, Request{Name: "RPG 00"}); err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	cfg := e.GetConfig()
	cfg.Thresholds.CategoryMinCandidates = 100
	if err := e.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig() error: %v", err)
	}

	resp, err := e.Recommend(context.Background(), catalog, Request{Name: "RPG 00"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("UpdateConfig() should clear the cache")
	}
	if !resp.Metadata.CategoryFallback {
		t.Error("new threshold not applied")
	}

	bad := e.GetConfig()
	bad.Limits.MaxLimit = 0
	if err := e.UpdateConfig(bad); err == nil {
		t.Error("UpdateConfig() should reject an invalid config")
	}
}
