// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package config loads and validates the service configuration.

# Configuration Sources

Values are layered with Koanf v2, later layers winning:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/steam-dashboard/config.yaml
  - Environment variables, mapped explicitly (see envMappings)

# Environment Variables

Dataset:
  - DATASET_SOURCE: local CSV path or http(s) URL (default: published export)
  - DATASET_FIRST_YEAR, DATASET_FINAL_YEAR: analysis window (default: 2014-2024)

Quality filters:
  - FILTER_MIN_REVIEWS (50), FILTER_MAX_GENRES (6)
  - FILTER_MAX_NAME_LENGTH (80), FILTER_MAX_UPPERCASE (20)

Recommendations:
  - RECOMMEND_LIMIT (5), RECOMMEND_CATEGORY_MIN (20), RECOMMEND_OVERLAP_MIN (5)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL

Market:
  - MARKET_MIN_GAMES (500), accepted between MARKET_MIN_GAMES_FLOOR and MARKET_MIN_GAMES_CEILING

Server and logging:
  - HTTP_HOST, HTTP_PORT (8080), CORS_ORIGINS, RATE_LIMIT_REQUESTS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example YAML

	dataset:
	  source: ./data/games_clean.csv
	market:
	  default_min_games: 300
	server:
	  port: 9000
*/
package config
