package recent

import "errors"

// Sentinel errors for the recently used list.
var (
	// ErrNilStore indicates a nil KV store was provided.
	ErrNilStore = errors.New("recent: store is nil")

	// ErrEmptyID indicates a blank identifier was added.
	ErrEmptyID = errors.New("recent: identifier is empty")

	// ErrEmptyKey indicates a blank storage key.
	ErrEmptyKey = errors.New("recent: key is empty")
)
