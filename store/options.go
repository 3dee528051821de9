package store

import (
	"github.com/jonwraymond/toolcatalog/observe"
	"github.com/jonwraymond/toolcatalog/resilience"
)

// Remote table names.
const (
	ToolsTable = "tools"
	StatsTable = "tool_stats"
)

// Operation names reported to telemetry.
const (
	OpScanPage = "scan_page"
	OpGetByID  = "get_by_id"
	OpScanAll  = "scan_all"
	OpPing     = "ping"
)

// Option configures a decorator.
type Option func(*options)

type options struct {
	middleware *observe.Middleware
	executor   *resilience.Executor
	backend    string
}

// WithMiddleware sets the telemetry middleware. Default: noop.
func WithMiddleware(m *observe.Middleware) Option {
	return func(o *options) {
		if m != nil {
			o.middleware = m
		}
	}
}

// WithExecutor sets the resilience executor. Default: none, calls run once.
func WithExecutor(e *resilience.Executor) Option {
	return func(o *options) { o.executor = e }
}

// WithBackend names the backend in telemetry, e.g. "postgres".
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

func newOptions(opts []Option) options {
	o := options{middleware: observe.NewMiddleware(nil, nil, nil)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) op(name, table string) observe.Op {
	return observe.Op{Name: name, Table: table, Backend: o.backend}
}
