// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Phantosirius/steam-dashboard/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Thresholds.CategoryMinCandidates != 20 || cfg.Thresholds.OverlapMinCandidates != 5 {
		t.Errorf("Thresholds = %+v, want 20/5", cfg.Thresholds)
	}
	if cfg.Limits.DefaultLimit != 5 || cfg.Limits.MaxLimit != 5 {
		t.Errorf("Limits = %+v, want 5/5", cfg.Limits)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative category threshold", func(c *Config) { c.Thresholds.CategoryMinCandidates = -1 }, "category_min_candidates"},
		{"negative overlap threshold", func(c *Config) { c.Thresholds.OverlapMinCandidates = -1 }, "overlap_min_candidates"},
		{"zero thresholds allowed", func(c *Config) { c.Thresholds = ThresholdConfig{} }, ""},
		{"zero default limit", func(c *Config) { c.Limits.DefaultLimit = 0 }, "default_limit"},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 3 }, "max_limit"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"zero entries", func(c *Config) { c.Cache.MaxEntries = 0 }, "cache.max_entries"},
		{"disabled cache skips cache checks", func(c *Config) { c.Cache = CacheConfig{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromSettings(t *testing.T) {
	t.Parallel()

	cfg := ConfigFromSettings(config.RecommendConfig{
		CategoryMinCandidates: 30,
		OverlapMinCandidates:  8,
		Limit:                 10,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		CacheMaxEntries:       50,
	})

	if cfg.Thresholds.CategoryMinCandidates != 30 || cfg.Thresholds.OverlapMinCandidates != 8 {
		t.Errorf("Thresholds = %+v", cfg.Thresholds)
	}
	if cfg.Limits.DefaultLimit != 10 || cfg.Limits.MaxLimit != 10 {
		t.Errorf("Limits = %+v", cfg.Limits)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != time.Minute || cfg.Cache.MaxEntries != 50 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}

	zero := ConfigFromSettings(config.RecommendConfig{})
	if zero.Thresholds != DefaultConfig().Thresholds || zero.Cache.Enabled {
		t.Errorf("zero settings = %+v", zero)
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()
	clone.Limits.MaxLimit = 99

	if orig.Limits.MaxLimit == 99 {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfigMarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	cacheSection, ok := decoded["cache"].(map[string]any)
	if !ok {
		t.Fatalf("cache section missing: %s", data)
	}
	if cacheSection["ttl"] != "10m0s" {
		t.Errorf("cache.ttl = %v, want 10m0s", cacheSection["ttl"])
	}
	if _, ok := decoded["thresholds"]; !ok {
		t.Error("thresholds section missing")
	}
}
