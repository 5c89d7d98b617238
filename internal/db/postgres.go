package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/config"
)

const (
	connectTimeout    = 10 * time.Second
	healthCheckPeriod = 30 * time.Second
	applicationName   = "alumnihub"
)

// PostgresDB owns the pgx pool behind the Postgres store
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens a pool sized from the database section and waits for the first ping.
func NewPostgresDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*PostgresDB, error) {
	poolConfig, err := poolConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Int32("maxConns", poolConfig.MaxConns).
		Msg("Connected to PostgreSQL")
	return &PostgresDB{Pool: pool}, nil
}

func poolConfigFrom(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	poolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, int(poolConfig.MaxConns)))
	poolConfig.MaxConnLifetime = lifetime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	return poolConfig, nil
}

// Ping checks that the pool can still reach the server
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases every pooled connection
func (db *PostgresDB) Close() error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	return nil
}
