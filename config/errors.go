package config

import "errors"

// Sentinel errors for configuration.
var (
	// ErrInvalidBackend indicates an unknown store backend.
	ErrInvalidBackend = errors.New("config: backend must be postgres or rest")

	// ErrMissingDSN indicates the postgres backend without a DSN.
	ErrMissingDSN = errors.New("config: postgres.dsn is required")

	// ErrMissingBaseURL indicates the rest backend without a base URL.
	ErrMissingBaseURL = errors.New("config: rest.base_url is required")

	// ErrInvalidPageSize indicates a page size below 1.
	ErrInvalidPageSize = errors.New("config: catalog.page_size must be positive")

	// ErrInvalidTTL indicates a non-positive stats TTL.
	ErrInvalidTTL = errors.New("config: stats.ttl must be positive")

	// ErrInvalidRecentLimit indicates a recent list cap below 1.
	ErrInvalidRecentLimit = errors.New("config: recent.limit must be positive")
)
