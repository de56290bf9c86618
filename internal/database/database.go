// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/Phantosirius/steam-dashboard/internal/config"
	"github.com/Phantosirius/steam-dashboard/internal/games"
	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// MemoryPath opens an in-process database that lives as long as the DB.
const MemoryPath = ":memory:"

// DB wraps the DuckDB connection holding the games table.
type DB struct {
	conn   *sql.DB
	cfg    config.DatabaseConfig
	logger zerolog.Logger

	// Load state of the games table
	stateMu sync.RWMutex
	loaded  bool
	version string
	rows    int
}

// Open opens the database described by cfg and creates the schema.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	if cfg.Path == "" {
		cfg.Path = MemoryPath
	}

	if cfg.Path != MemoryPath {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With().Str("component", "database").Logger(),
	}

	db.configureConnectionPool()

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.enableProfiling(); err != nil {
		db.logger.Warn().Err(err).Msg("Query profiling not enabled")
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database opened")
	return db, nil
}

// connectionString builds the DuckDB DSN. Extension auto-install and
// auto-load are disabled; the store needs only core functions.
func connectionString(cfg config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	return fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, maxMemory)
}

// configureConnectionPool sets connection pool parameters. Connections
// share one database instance, in-memory included.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS games (
		id             BIGINT,
		name           VARCHAR NOT NULL,
		release_year   INTEGER NOT NULL,
		price          DOUBLE NOT NULL,
		total_reviews  BIGINT NOT NULL,
		positive_ratio DOUBLE NOT NULL,
		category       VARCHAR NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create games table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// LoadGames replaces the games table with the records of catalog in one
// transaction. Readers see either the old or the new table.
func (db *DB) LoadGames(ctx context.Context, catalog *games.Catalog) (err error) {
	if catalog == nil {
		return fmt.Errorf("load games: %w", ErrNilCatalog)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("load", "games", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				db.logger.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM games"); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO games (
		id, name, release_year, price, total_reviews, positive_ratio, category
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, db.logger, "prepared statement")

	for i := range catalog.Records {
		rec := &catalog.Records[i]
		if _, err = stmt.ExecContext(ctx,
			rec.ID, rec.Name, rec.ReleaseYear, rec.Price,
			rec.TotalReviews, rec.PositiveRatio, string(rec.Category),
		); err != nil {
			return fmt.Errorf("failed to insert game %d: %w", rec.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit games: %w", err)
	}

	db.stateMu.Lock()
	db.loaded = true
	db.version = catalog.Version()
	db.rows = len(catalog.Records)
	db.stateMu.Unlock()
	metrics.DBRowsLoaded.Set(float64(len(catalog.Records)))

	db.logger.Info().
		Int("rows", len(catalog.Records)).
		Str("version", catalog.Version()).
		Dur("duration", time.Since(start)).
		Msg("Games table loaded")
	return nil
}

// LoadedVersion returns the catalog version in the games table, or "" before
// the first load.
func (db *DB) LoadedVersion() string {
	db.stateMu.RLock()
	defer db.stateMu.RUnlock()
	return db.version
}

// RowCount returns the number of rows written by the last load.
func (db *DB) RowCount() int {
	db.stateMu.RLock()
	defer db.stateMu.RUnlock()
	return db.rows
}

func (db *DB) checkLoaded() error {
	db.stateMu.RLock()
	defer db.stateMu.RUnlock()
	if !db.loaded {
		return ErrNotLoaded
	}
	return nil
}
