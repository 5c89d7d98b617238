package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// files holds the schema for each supported database driver, one directory per driver.
//
//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

const migrationTable = "schema_migrations"

// migration is one versioned SQL file
type migration struct {
	version string
	name    string
	sql     string
}

// load reads every .sql file under dir, ordered by file name.
// The version is the file name prefix before the first underscore ("001_init.sql" => "001").
func load(fsys fs.FS, dir string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	out := make([]migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		out = append(out, migration{
			version: strings.Split(name, "_")[0],
			name:    name,
			sql:     string(content),
		})
	}
	return out, nil
}

// Migrator applies the embedded PostgreSQL migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Migrate applies every migration that has not been recorded yet.
func (m *Migrator) Migrate(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS `+migrationTable+` (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	pending, err := load(files, "postgres")
	if err != nil {
		return err
	}

	for _, mig := range pending {
		var exists bool
		err := m.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM `+migrationTable+` WHERE version = $1)`, mig.version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			m.logger.Debug().Str("migration", mig.name).Msg("Migration already applied, skipping")
			continue
		}

		tx, err := m.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		if _, err := tx.Exec(ctx, mig.sql); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("error occurred during SQL migration %s: %w", mig.name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+migrationTable+` (version, applied_at) VALUES ($1, $2)`, mig.version, time.Now()); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		m.logger.Info().Str("migration", mig.name).Msg("Migration applied")
	}
	return nil
}

// MigrateSQLite applies the embedded SQLite migrations to db.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS `+migrationTable+` (
		version TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	pending, err := load(files, "sqlite")
	if err != nil {
		return err
	}

	for _, mig := range pending {
		var exists int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+migrationTable+` WHERE version = ?`, mig.version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists > 0 {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		if _, err := tx.ExecContext(ctx, mig.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("error occurred during SQL migration %s: %w", mig.name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+migrationTable+` (version, applied_at) VALUES (?, ?)`,
			mig.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}
	return nil
}
