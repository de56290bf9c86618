// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package main is the entry point for the Steam Dashboard server.
//
// Steam Dashboard loads a Steam games CSV export, cleans it, and serves
// game recommendations and market analytics over a JSON API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: in-process DuckDB store for price analytics
//  4. Dataset loader: file or HTTP source behind a circuit breaker
//  5. Recommendation engine and API handlers
//  6. Supervisor tree: dataset service, cache janitor, HTTP server
//
// The HTTP server starts immediately. Until the first dataset load
// succeeds, /api/v1/health/ready answers 503 and data endpoints answer
// CATALOG_NOT_LOADED.
//
// # Configuration
//
// Common environment variables:
//
//	DATASET_SOURCE=./data/games.csv     # or https://.../games.csv
//	DATASET_RELOAD=6h                   # periodic reload, 0 disables
//	HTTP_PORT=8080
//	LOG_LEVEL=info
//	LOG_FORMAT=console
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
// in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT, then the database
// is closed.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Phantosirius/steam-dashboard/internal/config"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	log := logging.WithComponent("server")
	log.Info().
		Str("dataset_source", cfg.Dataset.Source).
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Steam Dashboard")

	app, err := newApp(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.tree.Serve(ctx)

	if report, reportErr := app.tree.UnstoppedServiceReport(); reportErr == nil {
		for _, svc := range report {
			log.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
