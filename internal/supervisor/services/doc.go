// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package services provides suture v4 service wrappers for the long-running
parts of Steam Dashboard.

# Services

DatasetService (data layer) loads the CSV export, populates the DuckDB price
store and then idles until shutdown. A failed load returns an error, so the
supervisor restarts it with backoff:

	svc := services.NewDatasetService(loader, db, services.DatasetServiceConfig{
	    Source:      cfg.Dataset.Source,
	    LoadTimeout: cfg.Dataset.FetchTimeout,
	}, logger)
	tree.AddDataService(svc)

CacheJanitorService (maintenance layer) drops expired entries from the
recommendation and market report caches on a ticker.

HTTPServerService (api layer) runs an *http.Server and shuts it down
gracefully when its context is canceled:

	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

# Service Contract

Every service implements suture.Service:

  - Serve blocks until ctx is canceled and then returns ctx.Err()
  - any other returned error is a failure and triggers a restart
  - String names the service in supervisor log events
*/
package services
