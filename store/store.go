package store

import (
	"context"
	"errors"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/observe"
	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/stats"
)

// Pinger is implemented by backends that can test connectivity cheaply.
type Pinger interface {
	Ping(ctx context.Context) error
}

// call runs fn as operation op: each attempt is instrumented, the whole call
// goes through the executor.
func call[T any](ctx context.Context, o options, op observe.Op, fn func(context.Context) (T, int, error)) (T, error) {
	return resilience.Do(ctx, o.executor, func(ctx context.Context) (T, error) {
		var out T
		_, err := o.middleware.Wrap(op, func(ctx context.Context) (int, error) {
			v, rows, err := fn(ctx)
			if err != nil {
				return 0, err
			}
			out = v
			return rows, nil
		})(ctx)
		return out, err
	})
}

// Catalog is a catalog.Store with telemetry and resilience applied.
//
// Contract:
//   - Concurrency: safe for concurrent use if the wrapped store is.
//   - Errors: catalog.ErrNotFound is returned unretried and still matches
//     errors.Is.
type Catalog struct {
	next catalog.Store
	opts options
}

var _ catalog.Store = (*Catalog)(nil)

// NewCatalog decorates next.
func NewCatalog(next catalog.Store, opts ...Option) (*Catalog, error) {
	if next == nil {
		return nil, ErrNilStore
	}
	return &Catalog{next: next, opts: newOptions(opts)}, nil
}

// ScanPage implements catalog.Store.
func (c *Catalog) ScanPage(ctx context.Context, q catalog.PageQuery) ([]catalog.Row, error) {
	return call(ctx, c.opts, c.opts.op(OpScanPage, ToolsTable), func(ctx context.Context) ([]catalog.Row, int, error) {
		rows, err := c.next.ScanPage(ctx, q)
		return rows, len(rows), err
	})
}

// GetByID implements catalog.Store.
func (c *Catalog) GetByID(ctx context.Context, id string) (catalog.Row, error) {
	return call(ctx, c.opts, c.opts.op(OpGetByID, ToolsTable), func(ctx context.Context) (catalog.Row, int, error) {
		row, err := c.next.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				err = resilience.Permanent(err)
			}
			return catalog.Row{}, 0, err
		}
		return row, 1, nil
	})
}

// Ping tests the backend. Backends without a Ping method are probed with a
// one-row page scan.
func (c *Catalog) Ping(ctx context.Context) error {
	_, err := call(ctx, c.opts, c.opts.op(OpPing, ToolsTable), func(ctx context.Context) (struct{}, int, error) {
		if p, ok := c.next.(Pinger); ok {
			return struct{}{}, 0, p.Ping(ctx)
		}
		rows, err := c.next.ScanPage(ctx, catalog.PageQuery{EnabledOnly: true, Limit: 1})
		return struct{}{}, len(rows), err
	})
	return err
}

// Stats is a stats.Source with telemetry and resilience applied.
type Stats struct {
	next stats.Source
	opts options
}

var _ stats.Source = (*Stats)(nil)

// NewStats decorates next.
func NewStats(next stats.Source, opts ...Option) (*Stats, error) {
	if next == nil {
		return nil, ErrNilSource
	}
	return &Stats{next: next, opts: newOptions(opts)}, nil
}

// ScanAll implements stats.Source.
func (s *Stats) ScanAll(ctx context.Context) ([]stats.Row, error) {
	return call(ctx, s.opts, s.opts.op(OpScanAll, StatsTable), func(ctx context.Context) ([]stats.Row, int, error) {
		rows, err := s.next.ScanAll(ctx)
		return rows, len(rows), err
	})
}
