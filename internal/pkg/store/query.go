package store

import (
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq     Op = "eq"
	OpNeq    Op = "neq"
	OpIn     Op = "in"
	OpGt     Op = "gt"
	OpGte    Op = "gte"
	OpLt     Op = "lt"
	OpLte    Op = "lte"
	OpIsNull Op = "is_null"
)

// Filter is a single column predicate. Filters in a query are AND-ed.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter  { return Filter{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }
func Gt(column string, value any) Filter  { return Filter{Column: column, Op: OpGt, Value: value} }
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }
func Lt(column string, value any) Filter  { return Filter{Column: column, Op: OpLt, Value: value} }
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }
func IsNull(column string) Filter         { return Filter{Column: column, Op: OpIsNull} }

// In matches rows whose column is one of values. An empty list matches nothing.
func In(column string, values []string) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Order is a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query describes a select over one collection.
type Query struct {
	Collection string
	Columns    []string // empty selects every column
	Filters    []Filter
	Order      []Order
	Limit      uint64 // 0 means unlimited
	Offset     uint64
}

// builder turns store queries into SQL for one placeholder dialect.
type builder struct {
	placeholder squirrel.PlaceholderFormat
}

func (b builder) where(filters []Filter) ([]squirrel.Sqlizer, error) {
	preds := make([]squirrel.Sqlizer, 0, len(filters))
	for _, f := range filters {
		if err := checkIdentifier(f.Column); err != nil {
			return nil, err
		}
		switch f.Op {
		case OpEq:
			if f.Value == nil {
				return nil, fmt.Errorf("filter %s: use IsNull for nil comparisons", f.Column)
			}
			preds = append(preds, squirrel.Eq{f.Column: f.Value})
		case OpNeq:
			preds = append(preds, squirrel.NotEq{f.Column: f.Value})
		case OpIn:
			values, ok := f.Value.([]string)
			if !ok {
				return nil, fmt.Errorf("filter %s: in expects []string, got %T", f.Column, f.Value)
			}
			if len(values) == 0 {
				preds = append(preds, squirrel.Expr("1 = 0"))
				continue
			}
			preds = append(preds, squirrel.Eq{f.Column: values})
		case OpGt:
			preds = append(preds, squirrel.Gt{f.Column: f.Value})
		case OpGte:
			preds = append(preds, squirrel.GtOrEq{f.Column: f.Value})
		case OpLt:
			preds = append(preds, squirrel.Lt{f.Column: f.Value})
		case OpLte:
			preds = append(preds, squirrel.LtOrEq{f.Column: f.Value})
		case OpIsNull:
			preds = append(preds, squirrel.Eq{f.Column: nil})
		default:
			return nil, fmt.Errorf("filter %s: unsupported operator %q", f.Column, f.Op)
		}
	}
	return preds, nil
}

// mutationWhere refuses to build an unfiltered UPDATE or DELETE.
func (b builder) mutationWhere(filters []Filter) ([]squirrel.Sqlizer, error) {
	if len(filters) == 0 {
		return nil, ErrUnfiltered
	}
	return b.where(filters)
}

func (b builder) selectSQL(q Query) (string, []any, error) {
	if err := checkIdentifier(q.Collection); err != nil {
		return "", nil, err
	}
	columns := q.Columns
	if len(columns) == 0 {
		columns = []string{"*"}
	} else {
		for _, c := range columns {
			if err := checkIdentifier(c); err != nil {
				return "", nil, err
			}
		}
	}

	query := squirrel.Select(columns...).From(q.Collection).PlaceholderFormat(b.placeholder)
	preds, err := b.where(q.Filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	for _, o := range q.Order {
		if err := checkIdentifier(o.Column); err != nil {
			return "", nil, err
		}
		if o.Desc {
			query = query.OrderBy(o.Column + " DESC")
		} else {
			query = query.OrderBy(o.Column + " ASC")
		}
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	return query.ToSql()
}

func (b builder) countSQL(collection string, filters []Filter) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	query := squirrel.Select("COUNT(*)").From(collection).PlaceholderFormat(b.placeholder)
	preds, err := b.where(filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

func (b builder) groupCountSQL(collection, groupColumn string, filters []Filter) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	if err := checkIdentifier(groupColumn); err != nil {
		return "", nil, err
	}
	query := squirrel.Select(groupColumn, "COUNT(*)").
		From(collection).
		GroupBy(groupColumn).
		PlaceholderFormat(b.placeholder)
	preds, err := b.where(filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

// insertSQL fills in an id when the record has none and returns every column of the new row.
func (b builder) insertSQL(collection string, rec Record) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	if len(rec) == 0 {
		return "", nil, ErrEmptyPatch
	}
	row := make(Record, len(rec)+1)
	for k, v := range rec {
		row[k] = v
	}
	if id, ok := row["id"]; !ok || id == nil || id == "" {
		row["id"] = uuid.NewString()
	}
	columns := sortedColumns(row)
	values := make([]any, 0, len(columns))
	for _, c := range columns {
		if err := checkIdentifier(c); err != nil {
			return "", nil, err
		}
		values = append(values, row[c])
	}
	return squirrel.Insert(collection).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING *").
		PlaceholderFormat(b.placeholder).
		ToSql()
}

func (b builder) updateSQL(collection string, patch Record, filters []Filter) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	if len(patch) == 0 {
		return "", nil, ErrEmptyPatch
	}
	query := squirrel.Update(collection).PlaceholderFormat(b.placeholder)
	for _, c := range sortedColumns(patch) {
		if err := checkIdentifier(c); err != nil {
			return "", nil, err
		}
		query = query.Set(c, patch[c])
	}
	preds, err := b.mutationWhere(filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

func (b builder) incrementSQL(collection, column string, delta int64, filters []Filter) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	if err := checkIdentifier(column); err != nil {
		return "", nil, err
	}
	query := squirrel.Update(collection).
		Set(column, squirrel.Expr(column+" + ?", delta)).
		PlaceholderFormat(b.placeholder)
	preds, err := b.mutationWhere(filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

func (b builder) deleteSQL(collection string, filters []Filter) (string, []any, error) {
	if err := checkIdentifier(collection); err != nil {
		return "", nil, err
	}
	query := squirrel.Delete(collection).PlaceholderFormat(b.placeholder)
	preds, err := b.mutationWhere(filters)
	if err != nil {
		return "", nil, err
	}
	for _, p := range preds {
		query = query.Where(p)
	}
	return query.ToSql()
}

func sortedColumns(rec Record) []string {
	columns := make([]string, 0, len(rec))
	for c := range rec {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}
