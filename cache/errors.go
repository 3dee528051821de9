package cache

import "errors"

// Sentinel errors for loader construction.
var (
	ErrNilFetch = errors.New("cache: fetch function is nil")
)
