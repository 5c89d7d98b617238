// Package store provides a generic, collection-scoped object store on top of
// SQL databases. Collections map to tables and records to rows.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Record is a single row keyed by column name.
type Record map[string]any

// Common store errors
var (
	// ErrConflict is returned (wrapped) when a write violates a uniqueness constraint.
	ErrConflict = errors.New("uniqueness conflict")
	// ErrInvalidValue is returned (wrapped) when a written value does not parse as its column type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidIdentifier is returned when a collection or column name is not a plain identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEmptyPatch is returned when Update or Insert receives no columns.
	ErrEmptyPatch = errors.New("empty patch")
	// ErrUnfiltered is returned when a mutation would touch every row of a collection.
	ErrUnfiltered = errors.New("mutation requires at least one filter")
)

// Client is the query/mutation capability the application core consumes.
type Client interface {
	Select(ctx context.Context, q Query) ([]Record, error)
	Count(ctx context.Context, collection string, filters ...Filter) (int64, error)
	// GroupCount counts rows per distinct value of groupColumn.
	GroupCount(ctx context.Context, collection, groupColumn string, filters ...Filter) (map[string]int64, error)
	Insert(ctx context.Context, collection string, rec Record) (Record, error)
	Update(ctx context.Context, collection string, patch Record, filters ...Filter) (int64, error)
	// Increment atomically adds delta to column on every matching row.
	Increment(ctx context.Context, collection, column string, delta int64, filters ...Filter) (int64, error)
	Delete(ctx context.Context, collection string, filters ...Filter) (int64, error)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// ConflictError describes a uniqueness violation.
type ConflictError struct {
	Collection string
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Collection, ErrConflict, e.Constraint)
	}
	return fmt.Sprintf("%s: %s", e.Collection, ErrConflict)
}

// Is makes errors.Is(err, ErrConflict) true for every ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}
