// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a lookup or an update targets a user
	// that does not exist.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when an INSERT violates the unique
	// email constraint, typically because two signups raced past the
	// uniqueness pre-check.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when an INSERT violates the unique
	// username constraint.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserAlreadyExists is returned for any other unique violation on the
	// users table.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a user row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrUnsupportedDSN is returned when the connection string matches no
	// known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)
