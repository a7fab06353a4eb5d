// Package postgres provides PostgreSQL-based storage for scraped property
// records. It uses the pgx driver through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB represents a PostgreSQL connection pool.
type DB struct {
	db  *sql.DB
	dsn string
}

// NewDB creates a new DB instance for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	conn, err := sql.Open("pgx", db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.db = conn

	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// migrate creates the properties table. The id column exists only to give
// reads a stable insertion order.
func (db *DB) migrate(ctx context.Context) error {
	_, err := db.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS properties (
			id                  BIGSERIAL PRIMARY KEY,
			name                TEXT,
			category            TEXT,
			address             TEXT,
			age                 DOUBLE PRECISION,
			structure           TEXT,
			floor               DOUBLE PRECISION,
			rent                DOUBLE PRECISION,
			management_fee      DOUBLE PRECISION,
			deposit             DOUBLE PRECISION,
			key_money           DOUBLE PRECISION,
			layout              TEXT,
			area                DOUBLE PRECISION,
			image_url           TEXT,
			floorplan_image_url TEXT,
			detail_url          TEXT,
			line_1              TEXT,
			station_1           TEXT,
			walk_minutes_1      DOUBLE PRECISION,
			line_2              TEXT,
			station_2           TEXT,
			walk_minutes_2      DOUBLE PRECISION,
			line_3              TEXT,
			station_3           TEXT,
			walk_minutes_3      DOUBLE PRECISION
		)
	`)
	return err
}
