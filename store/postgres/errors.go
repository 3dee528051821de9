package postgres

import "errors"

// Sentinel errors for the postgres backend.
var (
	// ErrMissingDSN indicates an empty connection string.
	ErrMissingDSN = errors.New("postgres: dsn is required")

	// ErrInvalidSortColumn indicates an order-by column outside the tools table.
	ErrInvalidSortColumn = errors.New("postgres: invalid sort column")

	// ErrInvalidPage indicates a negative offset or a limit below 1.
	ErrInvalidPage = errors.New("postgres: invalid page bounds")
)
