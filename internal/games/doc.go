// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

// Package games defines the game record model and the pure functions applied
// to it at load time: genre parsing, the NSFW and quality filter, and the
// category classifier. Everything here is side-effect free.
package games
