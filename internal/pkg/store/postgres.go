package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumnihub/internal/pkg/dberrors"
)

// PostgresStore implements Client on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
	b  builder
}

// NewPostgres creates a PostgresStore backed by pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: pool,
		b:  builder{placeholder: squirrel.Dollar},
	}
}

// Select runs q and returns every matching row.
func (s *PostgresStore) Select(ctx context.Context, q Query) ([]Record, error) {
	sql, args, err := s.b.selectSQL(q)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		if matchesNothing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query on %s: %w", q.Collection, err)
	}
	defer rows.Close()

	records, err := collectPgRecords(rows)
	if err != nil {
		if matchesNothing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", q.Collection, err)
	}
	return records, nil
}

// Count returns the number of rows matching filters.
func (s *PostgresStore) Count(ctx context.Context, collection string, filters ...Filter) (int64, error) {
	sql, args, err := s.b.countSQL(collection, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		if matchesNothing(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("error counting %s: %w", collection, err)
	}
	return count, nil
}

// GroupCount returns row counts keyed by groupColumn.
func (s *PostgresStore) GroupCount(ctx context.Context, collection, groupColumn string, filters ...Filter) (map[string]int64, error) {
	sql, args, err := s.b.groupCountSQL(collection, groupColumn, filters)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	counts := make(map[string]int64)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		if matchesNothing(err) {
			return counts, nil
		}
		return nil, fmt.Errorf("error executing query on %s: %w", collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		key, _ := normalizePgValue(values[0]).(string)
		counts[key] = toInt64(values[1])
	}
	if err := rows.Err(); err != nil {
		if matchesNothing(err) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return counts, nil
}

// Insert adds rec to collection and returns the stored row.
func (s *PostgresStore) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	sql, args, err := s.b.insertSQL(collection, rec)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.classify(collection, err)
	}
	defer rows.Close()

	records, err := collectPgRecords(rows)
	if err != nil {
		return nil, s.classify(collection, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", collection)
	}
	return records[0], nil
}

// Update applies patch to every row matching filters.
func (s *PostgresStore) Update(ctx context.Context, collection string, patch Record, filters ...Filter) (int64, error) {
	sql, args, err := s.b.updateSQL(collection, patch, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, sql, args)
}

// Increment adds delta to column in a single statement.
func (s *PostgresStore) Increment(ctx context.Context, collection, column string, delta int64, filters ...Filter) (int64, error) {
	sql, args, err := s.b.incrementSQL(collection, column, delta, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, sql, args)
}

// Delete removes every row matching filters.
func (s *PostgresStore) Delete(ctx context.Context, collection string, filters ...Filter) (int64, error) {
	sql, args, err := s.b.deleteSQL(collection, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, sql, args)
}

func (s *PostgresStore) exec(ctx context.Context, collection, sql string, args []any) (int64, error) {
	result, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		if matchesNothing(err) {
			return 0, nil
		}
		return 0, s.classify(collection, err)
	}
	return result.RowsAffected(), nil
}

func (s *PostgresStore) classify(collection string, err error) error {
	if constraint, ok := dberrors.UniqueViolation(err); ok {
		return &ConflictError{Collection: collection, Constraint: constraint, Err: err}
	}
	if dberrors.InvalidText(err) {
		return fmt.Errorf("%s: %w: %w", collection, ErrInvalidValue, err)
	}
	return fmt.Errorf("error executing query on %s: %w", collection, err)
}

// matchesNothing reports a filter value that cannot parse as its column type.
// Such a value equals no stored row, so reads and filtered writes see an empty match.
func matchesNothing(err error) bool {
	return dberrors.InvalidText(err)
}

func collectPgRecords(rows pgx.Rows) ([]Record, error) {
	fields := rows.FieldDescriptions()
	var records []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(Record, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = normalizePgValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// normalizePgValue maps driver-specific types onto the plain Go types records carry.
func normalizePgValue(v any) any {
	switch t := v.(type) {
	case [16]byte:
		return uuid.UUID(t).String()
	case int32:
		return int64(t)
	case int16:
		return int64(t)
	default:
		return v
	}
}

var _ Client = (*PostgresStore)(nil)
