package stats

import "errors"

// Sentinel errors for stats operations.
var (
	ErrNilSource = errors.New("stats: source is nil")
)
