package db

import "errors"

var (
	// ErrConstraintUnique is returned when an insert violates a unique
	// constraint, e.g. a duplicate account email.
	ErrConstraintUnique = errors.New("unique constraint violation")

	// ErrNoRowsUpdated is returned by conditional updates when the guard
	// matched no row: the record is missing or its state changed since the
	// caller read it.
	ErrNoRowsUpdated = errors.New("conditional update matched no rows")
)
