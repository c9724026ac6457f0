// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassificator decodes driver errors into the users table column
// whose unique constraint was violated.
type ErrorClassificator interface {
	// UniqueViolation returns the offending column ("email", "username")
	// or "" for an unknown constraint. ok is false when err is not a
	// unique violation at all.
	UniqueViolation(err error) (column string, ok bool)
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// UniqueViolation implements [ErrorClassificator]. The column is taken from
// the constraint name (users_email_key, users_username_key).
func (c *PostgresErrorClassifier) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	return columnFromConstraint(pgErr.ConstraintName + " " + pgErr.Detail), true
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3 errors.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// UniqueViolation implements [ErrorClassificator]. SQLite reports the
// column in the message: "UNIQUE constraint failed: users.email".
func (c *SQLiteErrorClassifier) UniqueViolation(err error) (string, bool) {
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) || liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	return columnFromConstraint(liteErr.Error()), true
}

func columnFromConstraint(s string) string {
	switch {
	case strings.Contains(s, "email"):
		return "email"
	case strings.Contains(s, "username"):
		return "username"
	default:
		return ""
	}
}

// uniqueViolationError maps a unique violation on column to the matching
// sentinel.
func uniqueViolationError(column string) error {
	switch column {
	case "email":
		return ErrEmailAlreadyExists
	case "username":
		return ErrUsernameAlreadyExists
	default:
		return ErrUserAlreadyExists
	}
}
