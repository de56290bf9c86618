// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// scanFunc scans a single row into a result type.
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows with scan.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []any, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// timed runs fn and records its duration under operation.
func timed(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordDBQuery(operation, "games", time.Since(start), err)
	return err
}
