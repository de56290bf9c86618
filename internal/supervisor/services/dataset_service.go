// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/games"
)

// CatalogLoader reads and cleans a dataset.
type CatalogLoader interface {
	Load(ctx context.Context, source string) (*games.Catalog, error)
}

// catalogReloader re-reads the active source. Loaders that memoize per
// source implement it so scheduled reloads pick up new data.
type catalogReloader interface {
	Reload(ctx context.Context) (*games.Catalog, error)
}

// CatalogStore receives every loaded catalog.
type CatalogStore interface {
	LoadGames(ctx context.Context, catalog *games.Catalog) error
}

// DatasetServiceConfig holds configuration for the dataset service.
type DatasetServiceConfig struct {
	// Source is a file path or http(s) URL.
	Source string

	// LoadTimeout bounds one load including the store population.
	// Zero means no bound beyond the service context.
	LoadTimeout time.Duration

	// ReloadInterval reloads the dataset periodically. Zero loads once.
	ReloadInterval time.Duration
}

// DatasetService loads the dataset and populates the price store.
//
// A failed load returns an error so the supervisor restarts the service
// with backoff. After a successful load the service idles until shutdown,
// reloading every ReloadInterval when one is set. A failed periodic reload
// is logged and the previous catalog stays in place.
type DatasetService struct {
	loader CatalogLoader
	store  CatalogStore // optional
	config DatasetServiceConfig
	logger zerolog.Logger
	name   string
}

// NewDatasetService creates a new dataset service. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDatasetService(loader CatalogLoader, store CatalogStore, cfg DatasetServiceConfig, logger zerolog.Logger) *DatasetService {
	return &DatasetService{
		loader: loader,
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "dataset").Logger(),
		name:   "dataset-service",
	}
}

// Serve implements the suture.Service interface.
func (s *DatasetService) Serve(ctx context.Context) error {
	s.logger.Info().
		Str("source", s.config.Source).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("dataset service starting")

	if err := s.load(ctx, false); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if s.config.ReloadInterval <= 0 {
		<-ctx.Done()
		s.logger.Info().Msg("dataset service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("dataset service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.load(ctx, true); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled reload failed, keeping previous catalog")
			}
		}
	}
}

// load runs one load cycle. reload forces the source to be read again.
func (s *DatasetService) load(ctx context.Context, reload bool) error {
	if s.config.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LoadTimeout)
		defer cancel()
	}

	start := time.Now()
	var (
		catalog *games.Catalog
		err     error
	)
	if r, ok := s.loader.(catalogReloader); ok && reload {
		catalog, err = r.Reload(ctx)
	} else {
		catalog, err = s.loader.Load(ctx, s.config.Source)
	}
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if s.store != nil {
		if err := s.store.LoadGames(ctx, catalog); err != nil {
			return fmt.Errorf("populate price store: %w", err)
		}
	}

	s.logger.Info().
		Str("version", catalog.Version()).
		Int("records", catalog.Len()).
		Int("raw_rows", catalog.Stats.RawRows).
		Dur("duration", time.Since(start)).
		Msg("dataset ready")
	return nil
}

// String returns the service name for logging.
func (s *DatasetService) String() string {
	return s.name
}
