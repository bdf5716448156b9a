// Package db manages the poll cycle history kept for the lifetime of a
// session. The store is an in-memory SQLite database, so nothing survives a
// restart.
package db

import (
	"context"
	"database/sql"
	"fmt"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
}

// New opens the cycle history store. An empty dsn falls back to the
// in-memory database.
func New(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must never
	// open a second one.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA synchronous=OFF",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS cycles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at DATETIME NOT NULL,
		total_tokens INTEGER DEFAULT 0,
		requests INTEGER DEFAULT 0,
		cost REAL DEFAULT 0,
		alert_count INTEGER DEFAULT 0,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_cycles_at ON cycles(at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}
