// Package sqlite provides SQLite-based storage for scraped property records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the properties table if
// needed. The parent directory of path must exist.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite serializes writers and the scraper batches
	// every page into a single transaction anyway.
	conn.SetMaxOpenConns(1)

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// pragmas returns the connection settings applied by Open.
// WAL is skipped for in-memory databases, which do not support it.
func (db *DB) pragmas() []string {
	p := []string{"busy_timeout = 5000"}
	if db.path != ":memory:" {
		p = append(p, "journal_mode = WAL")
	}
	return p
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// schema defines the append-only properties table. Rows are read back in
// rowid order.
const schema = `
CREATE TABLE IF NOT EXISTS properties (
	name TEXT,
	category TEXT,
	address TEXT,
	age REAL,
	structure TEXT,
	floor REAL,
	rent REAL,
	management_fee REAL,
	deposit REAL,
	key_money REAL,
	layout TEXT,
	area REAL,
	image_url TEXT,
	floorplan_image_url TEXT,
	detail_url TEXT,
	line_1 TEXT,
	station_1 TEXT,
	walk_minutes_1 REAL,
	line_2 TEXT,
	station_2 TEXT,
	walk_minutes_2 REAL,
	line_3 TEXT,
	station_3 TEXT,
	walk_minutes_3 REAL
)`
