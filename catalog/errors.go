package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	// ErrNilStore indicates a nil Store was provided.
	ErrNilStore = errors.New("catalog: store is nil")

	// ErrNotFound is returned by Store.GetByID when no row has the identifier.
	ErrNotFound = errors.New("catalog: tool not found")

	// ErrSuperseded is returned to a caller whose result was discarded because
	// a newer request replaced it.
	ErrSuperseded = errors.New("catalog: request superseded")

	// ErrClosed is returned when a view is used after Close.
	ErrClosed = errors.New("catalog: view closed")

	// ErrInvalidPageSize indicates a page size below 1.
	ErrInvalidPageSize = errors.New("catalog: page size must be positive")
)

// ScanError reports a full scan aborted by a failed page request.
// The rows accumulated before the failure are discarded.
type ScanError struct {
	Offset int
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("catalog: scan page at offset %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
