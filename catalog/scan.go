package catalog

import (
	"context"

	"github.com/jonwraymond/toolcatalog/observe"
)

// DefaultPageSize is the number of rows requested per page. Stores commonly
// cap a single response, so a full scan never assumes one call is enough.
const DefaultPageSize = 1000

// ScanOption configures a full scan.
type ScanOption func(*scanConfig)

type scanConfig struct {
	pageSize int
	logger   observe.Logger
}

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) ScanOption {
	return func(c *scanConfig) {
		c.pageSize = n
	}
}

// WithScanLogger attaches a logger that receives one debug entry per page.
func WithScanLogger(l observe.Logger) ScanOption {
	return func(c *scanConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newScanConfig(opts []ScanOption) scanConfig {
	cfg := scanConfig{
		pageSize: DefaultPageSize,
		logger:   observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FullScan reads every enabled row from store, page by page in category then
// name order, and maps the result.
//
// Pages are requested strictly one after another. A page shorter than the
// page size ends the scan, so a table whose size is an exact multiple of the
// page size costs one extra, empty request.
//
// Any failed page aborts the scan with a *ScanError and no rows. When ctx
// ends, the request already in flight is still awaited (it runs detached from
// ctx cancellation), its rows are dropped and ctx.Err() is returned.
func FullScan(ctx context.Context, store Store, opts ...ScanOption) ([]Tool, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	cfg := newScanConfig(opts)
	if cfg.pageSize < 1 {
		return nil, ErrInvalidPageSize
	}

	reqCtx := context.WithoutCancel(ctx)
	var rows []Row

	for offset := 0; ; offset += cfg.pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := store.ScanPage(reqCtx, PageQuery{
			EnabledOnly: true,
			OrderBy:     DefaultOrder,
			Offset:      offset,
			Limit:       cfg.pageSize,
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			return nil, &ScanError{Offset: offset, Err: err}
		}

		rows = append(rows, page...)
		cfg.logger.Debug(ctx, "catalog page fetched",
			observe.Field{Key: "offset", Value: offset},
			observe.Field{Key: "rows", Value: len(page)},
		)

		if len(page) < cfg.pageSize {
			break
		}
	}

	return MapRows(rows), nil
}
