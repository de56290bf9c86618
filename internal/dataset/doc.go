// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package dataset turns a games CSV into a cleaned games.Catalog.

A source is either a local path or an http(s) URL. Remote downloads go
through HTTPFetcher, which wraps the request in a gobreaker circuit breaker
and exports its state as Prometheus metrics.

	loader := dataset.NewLoader(dataset.NewSourceFetcher(time.Minute, logger), dataset.DefaultOptions(), logger)
	catalog, err := loader.Load(ctx, "./data/games_clean.csv")

Loading is memoized per source: the same source returns the same catalog,
a different one is read and replaces it.
*/
package dataset
