// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/api"
	"github.com/Phantosirius/steam-dashboard/internal/config"
	"github.com/Phantosirius/steam-dashboard/internal/database"
	"github.com/Phantosirius/steam-dashboard/internal/dataset"
	"github.com/Phantosirius/steam-dashboard/internal/logging"
	"github.com/Phantosirius/steam-dashboard/internal/recommend"
	"github.com/Phantosirius/steam-dashboard/internal/supervisor"
	"github.com/Phantosirius/steam-dashboard/internal/supervisor/services"
)

// application holds the wired components. The supervisor tree owns every
// long-running service; the database is closed by Close after the tree stops.
type application struct {
	db      *database.DB
	loader  *dataset.Loader
	engine  *recommend.Engine
	handler *api.Handler
	router  http.Handler
	server  *http.Server
	tree    *supervisor.SupervisorTree
}

// newApp wires every component from cfg without starting anything.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(cfg *config.Config, logger zerolog.Logger) (*application, error) {
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	fetcher := dataset.NewSourceFetcher(cfg.Dataset.FetchTimeout, logger)
	loader := dataset.NewLoader(fetcher, dataset.OptionsFromConfig(cfg.Dataset, cfg.Filters), logger)

	engine, err := recommend.NewEngine(recommend.ConfigFromSettings(cfg.Recommend), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	handler := api.NewHandler(loader, engine, db, cfg, logger)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, mw).SetupChi()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewDatasetService(loader, db, services.DatasetServiceConfig{
		Source:         cfg.Dataset.Source,
		LoadTimeout:    cfg.Dataset.FetchTimeout,
		ReloadInterval: cfg.Dataset.ReloadInterval,
	}, logger))
	tree.AddMaintenanceService(services.NewCacheJanitorService(map[string]services.CacheCleaner{
		"recommend": engine,
		"market":    handler,
	}, services.DefaultCleanupInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	return &application{
		db:      db,
		loader:  loader,
		engine:  engine,
		handler: handler,
		router:  router,
		server:  server,
		tree:    tree,
	}, nil
}

// Close releases the database.
func (a *application) Close() error {
	return a.db.Close()
}
