package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteDB wraps a database/sql handle opened with the modernc driver.
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens the database at path with foreign keys enabled.
// ":memory:" gives a private in-process database.
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	} else {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// Every connection to ":memory:" is a separate database, and SQLite
	// serializes writers anyway.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}
	return &SQLiteDB{DB: sqlDB}, nil
}

// Ping checks the underlying handle
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the handle
func (db *SQLiteDB) Close() error {
	return db.DB.Close()
}
