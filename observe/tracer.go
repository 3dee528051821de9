package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps OpenTelemetry tracing with store-operation span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a store operation.
	StartSpan(ctx context.Context, op Op) (context.Context, trace.Span)

	// EndSpan ends the span, recording the row count and any error.
	EndSpan(span trace.Span, rows int, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer over an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, op Op) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("store.op", op.Name),
	}
	if op.Table != "" {
		attrs = append(attrs, attribute.String("store.table", op.Table))
	}
	if op.Backend != "" {
		attrs = append(attrs, attribute.String("store.backend", op.Backend))
	}

	return t.tracer.Start(ctx, op.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, rows int, err error) {
	span.SetAttributes(attribute.Int("store.rows", rows))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
