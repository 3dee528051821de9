package directory

import "errors"

// Sentinel errors for the directory.
var (
	// ErrNilTools indicates a nil tool source was provided.
	ErrNilTools = errors.New("directory: tool source is nil")

	// ErrNilStats indicates a nil stats reader was provided.
	ErrNilStats = errors.New("directory: stats reader is nil")
)
