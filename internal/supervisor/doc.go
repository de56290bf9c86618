// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package supervisor provides process supervision for Steam Dashboard using
suture v4.

# Tree Layout

	steam-dashboard (root)
	├── data-layer
	│   └── dataset-service     load CSV, populate DuckDB, optional reload
	├── maintenance-layer
	│   └── cache-janitor       expire recommendation and report caches
	└── api-layer
	    └── http-server         chi router

Each layer is its own suture.Supervisor, so a dataset source that keeps
failing backs off inside the data layer without restarting the HTTP
server. Until the first load succeeds the API answers readiness probes
with 503 and data endpoints with CATALOG_NOT_LOADED.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(datasetSvc)
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(httpSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which writes to the slog logger bridged onto zerolog.

# Failure Handling

Failures are counted per supervisor and decay exponentially over
FailureDecay seconds. Once the count exceeds FailureThreshold the
supervisor waits FailureBackoff before the next restart. Zero fields in
TreeConfig take suture's defaults (5 failures, 30s decay, 15s backoff,
10s shutdown timeout).

DuckDB is not supervised. It is an embedded library opened once by main
and reloaded by the dataset service.

# Debugging Shutdown

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn("service did not stop", "service", svc.Name)
	}
*/
package supervisor
