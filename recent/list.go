package recent

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/jonwraymond/toolcatalog/observe"
)

const (
	// DefaultKey is the storage key of the list.
	DefaultKey = "recently_used"

	// DefaultLimit caps the list length.
	DefaultLimit = 8
)

// Option configures a List.
type Option func(*List)

// WithKey sets the storage key. Default: DefaultKey.
func WithKey(key string) Option {
	return func(l *List) { l.key = key }
}

// WithLimit sets the cap. Values below 1 keep DefaultLimit.
func WithLimit(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithLogger sets the logger used for unreadable stored values.
func WithLogger(logger observe.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// List is a most-recent-first list of identifiers stored under one key.
//
// Contract:
//   - Concurrency: safe for concurrent use within one process; Add is a
//     read-modify-write and is serialized.
//   - Errors: an unreadable stored value is treated as an empty list and
//     logged; storage errors are returned.
type List struct {
	kv     KV
	key    string
	limit  int
	logger observe.Logger

	mu sync.Mutex
}

// NewList creates a List over kv.
func NewList(kv KV, opts ...Option) (*List, error) {
	if kv == nil {
		return nil, ErrNilStore
	}
	l := &List{kv: kv, key: DefaultKey, limit: DefaultLimit, logger: observe.NopLogger()}
	for _, opt := range opts {
		opt(l)
	}
	if strings.TrimSpace(l.key) == "" {
		return nil, ErrEmptyKey
	}
	return l, nil
}

// Items returns the identifiers, most recent first.
func (l *List) Items(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

// Add moves id to the front, dropping any older copy and anything past the
// cap, and returns the new list.
func (l *List) Add(ctx context.Context, id string) ([]string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	next := Push(items, id, l.limit)

	blob, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := l.kv.Set(ctx, l.key, blob); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear removes the stored list.
func (l *List) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.kv.Delete(ctx, l.key)
}

func (l *List) read(ctx context.Context) ([]string, error) {
	blob, ok, err := l.kv.Get(ctx, l.key)
	if err != nil || !ok {
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(blob, &items); err != nil {
		l.logger.Warn(ctx, "discarding unreadable recently used list",
			observe.Field{Key: "key", Value: l.key},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return nil, nil
	}
	return sanitize(items, l.limit), nil
}

// Push returns a new list with id first, older copies of id removed and the
// length capped at limit.
func Push(items []string, id string, limit int) []string {
	out := make([]string, 0, min(len(items)+1, max(limit, 1)))
	out = append(out, id)
	for _, it := range items {
		if len(out) >= limit {
			break
		}
		if it != id {
			out = append(out, it)
		}
	}
	return out
}

// sanitize drops blanks and duplicates from a stored list and applies the cap.
func sanitize(items []string, limit int) []string {
	out := make([]string, 0, min(len(items), limit))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || slices.Contains(out, it) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, it)
	}
	return out
}
