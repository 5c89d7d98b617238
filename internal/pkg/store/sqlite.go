package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumnihub/internal/pkg/dberrors"
)

// SQLiteStore implements Client on a database/sql handle opened with the
// modernc "sqlite" driver. Times are stored as fixed-width UTC text.
type SQLiteStore struct {
	db *sql.DB
	b  builder
}

// NewSQLite creates a SQLiteStore backed by db.
func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db: db,
		b:  builder{placeholder: squirrel.Question},
	}
}

// Select runs q and returns every matching row.
func (s *SQLiteStore) Select(ctx context.Context, q Query) ([]Record, error) {
	query, args, err := s.b.selectSQL(q)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, bindSQLiteArgs(args)...)
	if err != nil {
		return nil, fmt.Errorf("error executing query on %s: %w", q.Collection, err)
	}
	defer rows.Close()

	records, err := collectSQLRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", q.Collection, err)
	}
	return records, nil
}

// Count returns the number of rows matching filters.
func (s *SQLiteStore) Count(ctx context.Context, collection string, filters ...Filter) (int64, error) {
	query, args, err := s.b.countSQL(collection, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, bindSQLiteArgs(args)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", collection, err)
	}
	return count, nil
}

// GroupCount returns row counts keyed by groupColumn.
func (s *SQLiteStore) GroupCount(ctx context.Context, collection, groupColumn string, filters ...Filter) (map[string]int64, error) {
	query, args, err := s.b.groupCountSQL(collection, groupColumn, filters)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, bindSQLiteArgs(args)...)
	if err != nil {
		return nil, fmt.Errorf("error executing query on %s: %w", collection, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key sql.NullString
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[key.String] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return counts, nil
}

// Insert adds rec to collection and returns the stored row.
func (s *SQLiteStore) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	query, args, err := s.b.insertSQL(collection, rec)
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, bindSQLiteArgs(args)...)
	if err != nil {
		return nil, s.classify(collection, err)
	}
	defer rows.Close()

	records, err := collectSQLRecords(rows)
	if err != nil {
		return nil, s.classify(collection, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", collection)
	}
	return records[0], nil
}

// Update applies patch to every row matching filters.
func (s *SQLiteStore) Update(ctx context.Context, collection string, patch Record, filters ...Filter) (int64, error) {
	query, args, err := s.b.updateSQL(collection, patch, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, query, args)
}

// Increment adds delta to column in a single statement.
func (s *SQLiteStore) Increment(ctx context.Context, collection, column string, delta int64, filters ...Filter) (int64, error) {
	query, args, err := s.b.incrementSQL(collection, column, delta, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, query, args)
}

// Delete removes every row matching filters.
func (s *SQLiteStore) Delete(ctx context.Context, collection string, filters ...Filter) (int64, error) {
	query, args, err := s.b.deleteSQL(collection, filters)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	return s.exec(ctx, collection, query, args)
}

func (s *SQLiteStore) exec(ctx context.Context, collection, query string, args []any) (int64, error) {
	result, err := s.db.ExecContext(ctx, query, bindSQLiteArgs(args)...)
	if err != nil {
		return 0, s.classify(collection, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows on %s: %w", collection, err)
	}
	return affected, nil
}

func (s *SQLiteStore) classify(collection string, err error) error {
	if _, ok := dberrors.UniqueViolation(err); ok {
		return &ConflictError{Collection: collection, Err: err}
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return &ConflictError{Collection: collection, Err: err}
	}
	return fmt.Errorf("error executing query on %s: %w", collection, err)
}

// bindSQLiteArgs converts time values to TimeLayout text so stored and compared
// times sort correctly as strings.
func bindSQLiteArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case time.Time:
			out[i] = v.UTC().Format(TimeLayout)
		case *time.Time:
			if v == nil {
				out[i] = nil
			} else {
				out[i] = v.UTC().Format(TimeLayout)
			}
		default:
			out[i] = a
		}
	}
	return out
}

func collectSQLRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(Record, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[c] = string(b)
				continue
			}
			rec[c] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

var _ Client = (*SQLiteStore)(nil)
