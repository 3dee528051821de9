package store

import "errors"

// Sentinel errors for store decorators.
var (
	// ErrNilStore indicates a nil catalog store was provided.
	ErrNilStore = errors.New("store: catalog store is nil")

	// ErrNilSource indicates a nil statistics source was provided.
	ErrNilSource = errors.New("store: stats source is nil")
)
