// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/cache"
	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// ErrNotLoaded is returned by Current before the first successful load.
var ErrNotLoaded = errors.New("dataset not loaded")

// Loader loads catalogs and keeps the one for the latest source. Loading
// the same source again returns the held catalog; a different source is
// loaded and replaces it. A failed load leaves the previous catalog active.
type Loader struct {
	fetcher Fetcher
	opts    Options
	memo    *cache.Memo[*games.Catalog]
	logger  zerolog.Logger
	now     func() time.Time
}

// NewLoader creates a loader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(fetcher Fetcher, opts Options, logger zerolog.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		opts:    opts,
		memo:    cache.NewMemo[*games.Catalog](),
		logger:  logger.With().Str("component", "dataset").Logger(),
		now:     time.Now,
	}
}

// Load returns the catalog for source, reading it only when source differs
// from the active one.
func (l *Loader) Load(ctx context.Context, source string) (*games.Catalog, error) {
	catalog, cached, err := l.memo.Get(ctx, source, l.load)
	if err != nil {
		return nil, err
	}
	if cached {
		l.logger.Debug().Str("source", source).Msg("Dataset already loaded for source")
	}
	return catalog, nil
}

// Reload forces the active source to be read again.
func (l *Loader) Reload(ctx context.Context) (*games.Catalog, error) {
	current, err := l.Current()
	if err != nil {
		return nil, err
	}
	catalog, err := l.load(ctx, current.Source)
	if err != nil {
		return nil, err
	}
	l.memo.Set(current.Source, catalog)
	return catalog, nil
}

// Current returns the active catalog.
func (l *Loader) Current() (*games.Catalog, error) {
	catalog, _, ok := l.memo.Current()
	if !ok || catalog == nil {
		return nil, ErrNotLoaded
	}
	return catalog, nil
}

func (l *Loader) load(ctx context.Context, source string) (*games.Catalog, error) {
	start := l.now()
	sourceType := SourceType(source)
	log := l.logger.With().Str("source", source).Str("source_type", sourceType).Logger()

	log.Info().Msg("Loading dataset")

	catalog, err := l.read(ctx, source, start)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordDatasetLoad(sourceType, duration, 0, 0, nil, err)
		log.Error().Err(err).Dur("duration", duration).Msg("Dataset load failed")
		return nil, err
	}

	stats := catalog.Stats
	metrics.RecordDatasetLoad(sourceType, duration, stats.RawRows, stats.Kept, exclusionCounts(stats), nil)

	event := log.Info().
		Int("raw_rows", stats.RawRows).
		Int("outside_window", stats.OutsideWindow).
		Int("records", stats.Kept).
		Dur("duration", duration)
	for reason, n := range stats.Excluded {
		event = event.Int("excluded_"+string(reason), n)
	}
	event.Msg("Dataset loaded")

	return catalog, nil
}

func (l *Loader) read(ctx context.Context, source string, loadedAt time.Time) (*games.Catalog, error) {
	body, err := l.fetcher.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = body.Close() }()

	rows, err := ReadCSV(body)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return BuildCatalog(rows, source, loadedAt, l.opts), nil
}
