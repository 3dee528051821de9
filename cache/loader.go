package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock returns the current time.
type Clock func() time.Time

// FetchFunc loads a fresh value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Outcome classifies a read.
type Outcome string

const (
	// OutcomeHit means a fresh value was served without loading.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means there was no value and a load was attempted.
	OutcomeMiss Outcome = "miss"
	// OutcomeStale means the held value had expired and a refresh was attempted.
	OutcomeStale Outcome = "stale"
)

const flightKey = "load"

// Option configures a Loader.
type Option func(*loaderConfig)

type loaderConfig struct {
	policy Policy
	ttl    time.Duration
	clock  Clock
}

// WithPolicy sets the TTL policy. Default: DefaultPolicy().
func WithPolicy(p Policy) Option {
	return func(c *loaderConfig) { c.policy = p }
}

// WithTTL overrides the policy's default TTL, subject to its MaxTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *loaderConfig) { c.ttl = ttl }
}

// WithClock injects the time source. Default: time.Now.
func WithClock(clock Clock) Option {
	return func(c *loaderConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// State is a point-in-time view of a Loader.
type State[T any] struct {
	Value     T
	HasValue  bool
	LoadedAt  time.Time
	Loading   bool
	Fresh     bool
	LastError error
}

// Loader caches the result of a fetch function for a TTL.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent loads share one fetch.
//   - Context: the fetch runs detached from the caller's cancellation; a
//     caller whose ctx ends stops waiting but the load still completes and is
//     stored.
//   - Errors: a failed load never discards the previous value.
type Loader[T any] struct {
	fetch FetchFunc[T]
	ttl   time.Duration
	now   Clock

	mu       sync.RWMutex
	value    T
	hasValue bool
	loadedAt time.Time
	loading  bool
	lastErr  error

	sfGroup singleflight.Group
}

// NewLoader creates a Loader around fetch.
func NewLoader[T any](fetch FetchFunc[T], opts ...Option) (*Loader[T], error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}
	cfg := loaderConfig{policy: DefaultPolicy(), clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader[T]{
		fetch: fetch,
		ttl:   cfg.policy.EffectiveTTL(cfg.ttl),
		now:   cfg.clock,
	}, nil
}

// TTL returns the effective freshness window.
func (l *Loader[T]) TTL() time.Duration {
	return l.ttl
}

// Get returns the held value, loading it first when absent or expired.
//
// On load failure Get returns the previous value (zero if none) with the
// error. The outcome reports what the read found before any load.
func (l *Loader[T]) Get(ctx context.Context) (T, Outcome, error) {
	l.mu.RLock()
	outcome := l.classifyLocked()
	seen := l.loadedAt
	value := l.value
	l.mu.RUnlock()

	if outcome == OutcomeHit {
		return value, outcome, nil
	}

	err := l.load(ctx, func() bool {
		// Another caller finished a load after we looked.
		return l.loadedAt.After(seen) && l.freshLocked()
	})

	l.mu.RLock()
	value = l.value
	l.mu.RUnlock()
	return value, outcome, err
}

// Refresh loads a new value regardless of freshness.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	return l.load(ctx, func() bool { return false })
}

// Peek returns the held value without loading.
func (l *Loader[T]) Peek() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.hasValue
}

// State returns a snapshot of the loader's state.
func (l *Loader[T]) State() State[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State[T]{
		Value:     l.value,
		HasValue:  l.hasValue,
		LoadedAt:  l.loadedAt,
		Loading:   l.loading,
		Fresh:     l.freshLocked(),
		LastError: l.lastErr,
	}
}

func (l *Loader[T]) load(ctx context.Context, skip func() bool) error {
	ch := l.sfGroup.DoChan(flightKey, func() (any, error) {
		l.mu.Lock()
		if skip() {
			l.mu.Unlock()
			return nil, nil
		}
		l.loading = true
		l.mu.Unlock()

		v, err := l.fetch(context.WithoutCancel(ctx))

		l.mu.Lock()
		defer l.mu.Unlock()
		l.loading = false
		if err != nil {
			l.lastErr = err
			return nil, err
		}
		l.value = v
		l.hasValue = true
		l.loadedAt = l.now()
		l.lastErr = nil
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// classifyLocked reports the outcome of a read. Caller must hold at least RLock.
func (l *Loader[T]) classifyLocked() Outcome {
	switch {
	case !l.hasValue:
		return OutcomeMiss
	case l.freshLocked():
		return OutcomeHit
	default:
		return OutcomeStale
	}
}

// freshLocked reports whether the held value is inside the TTL. Caller must hold at least RLock.
func (l *Loader[T]) freshLocked() bool {
	return l.hasValue && l.ttl > 0 && l.now().Sub(l.loadedAt) < l.ttl
}
