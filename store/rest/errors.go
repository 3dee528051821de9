package rest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the REST backend.
var (
	// ErrMissingBaseURL indicates an empty or unparsable base URL.
	ErrMissingBaseURL = errors.New("rest: base url is required")

	// ErrInvalidSortColumn indicates an order-by column with characters the
	// query syntax cannot carry.
	ErrInvalidSortColumn = errors.New("rest: invalid sort column")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("rest: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("rest: unexpected status %d: %s", e.StatusCode, e.Body)
}
