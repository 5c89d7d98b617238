package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// UniqueViolation reports whether err is a unique or primary key violation from
// PostgreSQL or SQLite. The constraint name is only known for PostgreSQL.
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return "", true
		}
	}
	return "", false
}

// InvalidText reports whether PostgreSQL rejected a parameter that does not
// parse as the column type, such as a non-uuid string compared with a uuid column.
func InvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}
