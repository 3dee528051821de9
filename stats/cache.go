package stats

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/toolcatalog/cache"
	"github.com/jonwraymond/toolcatalog/observe"
)

// DefaultTTL is how long a snapshot is served before a refresh.
const DefaultTTL = 5 * time.Minute

// metricsName labels this cache in telemetry.
const metricsName = "stats"

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. Default: DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects the time source. Default: time.Now.
func WithClock(now cache.Clock) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for refresh failures.
func WithLogger(logger observe.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the recorder for cache accesses.
func WithMetrics(m observe.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// State describes the cache for health reporting.
type State struct {
	Snapshot  *Snapshot
	Loading   bool
	Fresh     bool
	LastError error
}

// Cache is the shared TTL cache of the statistics table.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent refreshes share one
//     Source.ScanAll call.
//   - Errors: reads never fail; a failed refresh keeps the previous snapshot
//     and is logged.
type Cache struct {
	source  Source
	ttl     time.Duration
	now     cache.Clock
	logger  observe.Logger
	metrics observe.Metrics
	loader  *cache.Loader[*Snapshot]
}

// NewCache creates a Cache reading from source.
func NewCache(source Source, opts ...Option) (*Cache, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	c := &Cache{
		source:  source,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  observe.NopLogger(),
		metrics: observe.NopMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}

	loader, err := cache.NewLoader(c.load,
		cache.WithPolicy(cache.Policy{DefaultTTL: c.ttl}),
		cache.WithClock(c.now),
	)
	if err != nil {
		return nil, err
	}
	c.loader = loader
	return c, nil
}

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	rows, err := c.source.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(rows, c.now()), nil
}

// Snapshot returns the current snapshot, refreshing it first when it is
// missing or older than the TTL. It never returns nil; on failure it returns
// the previous snapshot or an empty one.
func (c *Cache) Snapshot(ctx context.Context) *Snapshot {
	snap, outcome, err := c.loader.Get(ctx)
	c.metrics.RecordCacheAccess(ctx, metricsName, string(outcome))
	switch {
	case err == nil:
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		c.logger.Debug(ctx, "stats wait abandoned",
			observe.Field{Key: "outcome", Value: string(outcome)},
			observe.Field{Key: "error", Value: err.Error()},
		)
	default:
		c.metrics.RecordRefreshFailure(ctx, metricsName)
		c.logger.Warn(ctx, "stats refresh failed, serving previous snapshot",
			observe.Field{Key: "outcome", Value: string(outcome)},
			observe.Field{Key: "entries", Value: snap.Len()},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}
	if snap == nil {
		return NewSnapshot(nil, time.Time{})
	}
	return snap
}

// Refresh replaces the snapshot regardless of its age.
func (c *Cache) Refresh(ctx context.Context) error {
	if err := c.loader.Refresh(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return err
		}
		c.metrics.RecordRefreshFailure(ctx, metricsName)
		c.logger.Warn(ctx, "stats refresh failed", observe.Field{Key: "error", Value: err.Error()})
		return err
	}
	return nil
}

// Record returns the record for id, or the zero Record when unknown.
func (c *Cache) Record(ctx context.Context, id string) Record {
	return c.Snapshot(ctx).Record(id)
}

// Trending returns the current trending IDs.
func (c *Cache) Trending(ctx context.Context) []string {
	return c.Snapshot(ctx).Trending()
}

// TopRated returns the current top-rated IDs.
func (c *Cache) TopRated(ctx context.Context) []string {
	return c.Snapshot(ctx).TopRated()
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration {
	return c.loader.TTL()
}

// State returns the cache state without triggering a load.
func (c *Cache) State() State {
	st := c.loader.State()
	return State{
		Snapshot:  st.Value,
		Loading:   st.Loading,
		Fresh:     st.Fresh,
		LastError: st.LastError,
	}
}
