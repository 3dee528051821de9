package observe

import (
	"context"
	"time"

	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// OpFunc performs one store operation and reports how many rows it returned.
type OpFunc func(ctx context.Context) (rows int, err error)

// Middleware wraps store operations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a function safe for concurrent use.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from its parts.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NewTracer(tracenoop.NewTracerProvider().Tracer("noop"))
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Metrics returns the middleware's metrics recorder, for sharing with caches.
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap instruments fn as operation op.
func (m *Middleware) Wrap(op Op, fn OpFunc) OpFunc {
	return func(ctx context.Context) (int, error) {
		ctx, span := m.tracer.StartSpan(ctx, op)

		start := time.Now()
		rows, err := fn(ctx)
		duration := time.Since(start)

		m.tracer.EndSpan(span, rows, err)
		m.metrics.RecordRequest(ctx, op, duration, rows, err)

		fields := append(op.fields(),
			Field{Key: "rows", Value: rows},
			Field{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		)
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			m.logger.Error(ctx, "store request failed", fields...)
		} else {
			m.logger.Debug(ctx, "store request completed", fields...)
		}

		return rows, err
	}
}
