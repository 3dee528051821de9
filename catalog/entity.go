package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonwraymond/toolcatalog/observe"
)

// FetchOne fetches and maps a single tool. It returns ErrNotFound (wrapped
// by the store, if at all) when the identifier does not exist.
func FetchOne(ctx context.Context, store Store, id string) (Tool, error) {
	if store == nil {
		return Tool{}, ErrNilStore
	}
	row, err := store.GetByID(ctx, id)
	if err != nil {
		return Tool{}, err
	}
	return MapRow(row), nil
}

// EntityState is a point-in-time copy of an EntityView.
type EntityState struct {
	ID      string
	Tool    *Tool // nil when nothing is selected or the tool was not found
	Loading bool
	Err     error
}

// Found reports whether the state holds a tool.
func (s EntityState) Found() bool {
	return s.Tool != nil
}

// EntityView tracks the tool for the currently selected identifier.
//
// Every Select supersedes the previous one. A response for an identifier
// that is no longer selected is never applied, whatever order responses
// arrive in.
type EntityView struct {
	store  Store
	logger observe.Logger

	mu      sync.Mutex
	gen     uint64
	closed  bool
	id      string
	tool    *Tool
	loading bool
	err     error
}

// NewEntityView creates a view over store.
func NewEntityView(store Store, logger observe.Logger) *EntityView {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &EntityView{store: store, logger: logger}
}

// Select makes id the current identifier and fetches it.
//
// A blank id resolves immediately to "no tool, not loading" without
// contacting the store. A missing tool is not an error: the state simply
// holds no tool. Select returns ErrSuperseded when a later Select replaced
// this one before its response arrived.
func (v *EntityView) Select(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.gen++
	gen := v.gen
	v.id = id
	v.tool = nil
	v.err = nil
	v.loading = id != ""
	v.mu.Unlock()

	if id == "" {
		return nil
	}

	// The request outlives ctx; only its effect is suppressed.
	tool, err := FetchOne(context.WithoutCancel(ctx), v.store, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if ctx.Err() != nil && gen == v.gen {
		v.loading = false
	}
	switch {
	case v.closed:
		return ErrClosed
	case gen != v.gen:
		return ErrSuperseded
	case ctx.Err() != nil:
		return ctx.Err()
	}

	v.loading = false
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		v.err = err
		v.logger.Warn(ctx, "tool fetch failed",
			observe.Field{Key: "tool.id", Value: id},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return err
	}

	v.tool = &tool
	return nil
}

// State returns a copy of the current state.
func (v *EntityView) State() EntityState {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := EntityState{ID: v.id, Loading: v.loading, Err: v.err}
	if v.tool != nil {
		t := *v.tool
		s.Tool = &t
	}
	return s
}

// Close ends the owner lifetime; in-flight selections are discarded.
func (v *EntityView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.gen++
	v.tool = nil
	v.loading = false
}
