// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package logging provides the zerolog-based structured logger shared by every
// component of the service.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("source", src).Int("games", n).Msg("dataset loaded")
//	logging.Err(err).Msg("price analytics failed")
//
//	// Request scoped, carries request_id and correlation_id
//	logging.Ctx(r.Context()).Debug().Msg("recommendations served")
//
// # Configuration
//
// Level, format and caller reporting come from the logging section of the
// service configuration (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).
//
// # slog bridge
//
// SlogHandler lets libraries that log through log/slog (sutureslog in the
// supervisor tree) write through the same zerolog output.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
