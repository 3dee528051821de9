package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Cache access outcomes.
const (
	CacheHit   = "hit"   // fresh snapshot served without I/O
	CacheMiss  = "miss"  // no snapshot yet; a load was needed
	CacheStale = "stale" // snapshot outside the freshness window; refresh attempted
)

// Metrics records store request and cache access metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRequest records one store operation.
	RecordRequest(ctx context.Context, op Op, duration time.Duration, rows int, err error)

	// RecordCacheAccess records a cache read and how it was served.
	RecordCacheAccess(ctx context.Context, cache, outcome string)

	// RecordRefreshFailure records a failed cache refresh.
	RecordRefreshFailure(ctx context.Context, cache string)
}

type metricsImpl struct {
	requests        metric.Int64Counter
	errors          metric.Int64Counter
	duration        metric.Float64Histogram
	rows            metric.Int64Counter
	cacheAccesses   metric.Int64Counter
	refreshFailures metric.Int64Counter
}

// NewMetrics creates the catalog instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	var (
		m   metricsImpl
		err error
	)

	if m.requests, err = meter.Int64Counter(
		"catalog.store.requests",
		metric.WithDescription("Total number of remote store requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if m.errors, err = meter.Int64Counter(
		"catalog.store.errors",
		metric.WithDescription("Total number of failed remote store requests"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	if m.duration, err = meter.Float64Histogram(
		"catalog.store.duration_ms",
		metric.WithDescription("Remote store request duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.rows, err = meter.Int64Counter(
		"catalog.store.rows",
		metric.WithDescription("Rows returned by the remote store"),
		metric.WithUnit("{row}"),
	); err != nil {
		return nil, err
	}

	if m.cacheAccesses, err = meter.Int64Counter(
		"stats.cache.accesses",
		metric.WithDescription("Stats cache reads by outcome"),
		metric.WithUnit("{access}"),
	); err != nil {
		return nil, err
	}

	if m.refreshFailures, err = meter.Int64Counter(
		"stats.cache.refresh_failures",
		metric.WithDescription("Failed stats cache refreshes"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *metricsImpl) RecordRequest(ctx context.Context, op Op, duration time.Duration, rows int, err error) {
	attrs := []attribute.KeyValue{attribute.String("store.op", op.Name)}
	if op.Table != "" {
		attrs = append(attrs, attribute.String("store.table", op.Table))
	}
	if op.Backend != "" {
		attrs = append(attrs, attribute.String("store.backend", op.Backend))
	}
	opt := metric.WithAttributes(attrs...)

	m.requests.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Milliseconds()), opt)
	if rows > 0 {
		m.rows.Add(ctx, int64(rows), opt)
	}
}

func (m *metricsImpl) RecordCacheAccess(ctx context.Context, cache, outcome string) {
	m.cacheAccesses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", cache),
		attribute.String("outcome", outcome),
	))
}

func (m *metricsImpl) RecordRefreshFailure(ctx context.Context, cache string) {
	m.refreshFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", cache)))
}

type nopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics {
	return nopMetrics{}
}

func (nopMetrics) RecordRequest(context.Context, Op, time.Duration, int, error) {}
func (nopMetrics) RecordCacheAccess(context.Context, string, string)            {}
func (nopMetrics) RecordRefreshFailure(context.Context, string)                 {}
