package catalog

import (
	"context"
	"sync"

	"github.com/jonwraymond/toolcatalog/observe"
)

// ListState is a point-in-time copy of a ListView.
type ListState struct {
	Tools   []Tool
	Loading bool
	Err     error
}

// ListView holds the tool set produced by the most recent successful full
// scan for one owner (for example a mounted page).
//
// Each Load starts a new generation with its own accumulator. A result is
// applied only while its generation is current, its ctx is live and the view
// is open; anything else is discarded without touching state.
type ListView struct {
	store  Store
	opts   []ScanOption
	logger observe.Logger

	mu      sync.Mutex
	gen     uint64
	closed  bool
	tools   []Tool
	loading bool
	err     error
}

// NewListView creates a view over store. Scan options apply to every Load.
func NewListView(store Store, logger observe.Logger, opts ...ScanOption) *ListView {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &ListView{
		store:  store,
		opts:   append([]ScanOption{WithScanLogger(logger)}, opts...),
		logger: logger,
	}
}

// Load runs a full scan and, if still relevant, replaces the held tool set.
//
// On failure the previous tool set is kept and the error is recorded in the
// state as well as returned. A load overtaken by a newer Load returns
// ErrSuperseded; one whose ctx ended returns ctx.Err().
func (v *ListView) Load(ctx context.Context) error {
	gen, err := v.begin()
	if err != nil {
		return err
	}

	tools, scanErr := FullScan(ctx, v.store, v.opts...)

	v.mu.Lock()
	defer v.mu.Unlock()

	if ctx.Err() != nil && gen == v.gen {
		v.loading = false
	}
	if stale := v.staleLocked(ctx, gen); stale != nil {
		return stale
	}

	v.loading = false
	if scanErr != nil {
		v.err = scanErr
		v.logger.Error(ctx, "catalog scan failed", observe.Field{Key: "error", Value: scanErr.Error()})
		return scanErr
	}

	v.tools = tools
	v.err = nil
	v.logger.Info(ctx, "catalog scan completed", observe.Field{Key: "tools", Value: len(tools)})
	return nil
}

func (v *ListView) begin() (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return 0, ErrClosed
	}
	v.gen++
	v.loading = true
	return v.gen, nil
}

// staleLocked reports why a result for gen must be dropped, or nil.
func (v *ListView) staleLocked(ctx context.Context, gen uint64) error {
	switch {
	case v.closed:
		return ErrClosed
	case gen != v.gen:
		return ErrSuperseded
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return nil
}

// State returns a copy of the current state.
func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()

	tools := make([]Tool, len(v.tools))
	copy(tools, v.tools)
	return ListState{Tools: tools, Loading: v.loading, Err: v.err}
}

// Tools returns a copy of the held tool set.
func (v *ListView) Tools() []Tool {
	return v.State().Tools
}

// Close ends the owner lifetime. Loads still in flight are discarded and the
// held tools are released.
func (v *ListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.gen++
	v.tools = nil
	v.loading = false
}
