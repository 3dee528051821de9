package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// gatedStore holds each GetByID until its id is released.
type gatedStore struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func newGatedStore(ids ...string) *gatedStore {
	s := &gatedStore{gates: make(map[string]chan struct{}), started: make(chan string, len(ids))}
	for _, id := range ids {
		s.gates[id] = make(chan struct{})
	}
	return s
}

func (s *gatedStore) ScanPage(context.Context, PageQuery) ([]Row, error) {
	return nil, errors.New("not used")
}

func (s *gatedStore) GetByID(_ context.Context, id string) (Row, error) {
	s.mu.Lock()
	gate := s.gates[id]
	s.mu.Unlock()

	s.started <- id
	<-gate
	return Row{ID: id, Name: "Tool " + id, Category: "text"}, nil
}

func (s *gatedStore) release(id string) {
	close(s.gates[id])
}

func TestEntityView_LastSelectionWins(t *testing.T) {
	tests := []struct {
		name         string
		releaseOrder []string
	}{
		{"responses in request order", []string{"x", "y"}},
		{"responses out of order", []string{"y", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newGatedStore("x", "y")
			v := NewEntityView(store, nil)
			ctx := context.Background()

			results := map[string]chan error{"x": make(chan error, 1), "y": make(chan error, 1)}
			go func() { results["x"] <- v.Select(ctx, "x") }()
			<-store.started
			go func() { results["y"] <- v.Select(ctx, "y") }()
			<-store.started

			for _, id := range tt.releaseOrder {
				store.release(id)
				err := <-results[id]
				if id == "x" && !errors.Is(err, ErrSuperseded) {
					t.Errorf("Select(x) error = %v, want ErrSuperseded", err)
				}
				if id == "y" && err != nil {
					t.Errorf("Select(y) error = %v, want nil", err)
				}
			}

			st := v.State()
			if st.ID != "y" || !st.Found() || st.Tool.ID != "y" || st.Loading {
				t.Errorf("final state = %+v, want tool y", st)
			}
		})
	}
}

func TestEntityView_BlankIDSkipsStore(t *testing.T) {
	var calls atomic.Int32
	store := funcStore{get: func(context.Context, string) (Row, error) {
		calls.Add(1)
		return Row{}, nil
	}}
	v := NewEntityView(store, nil)

	for _, id := range []string{"", "   "} {
		if err := v.Select(context.Background(), id); err != nil {
			t.Fatalf("Select(%q) error = %v", id, err)
		}
		st := v.State()
		if st.Found() || st.Loading || st.Err != nil || st.ID != "" {
			t.Errorf("Select(%q) state = %+v, want empty", id, st)
		}
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("store calls = %d, want 0", got)
	}
}

func TestEntityView_BlankIDSupersedesInFlight(t *testing.T) {
	store := newGatedStore("x")
	v := NewEntityView(store, nil)

	done := make(chan error, 1)
	go func() { done <- v.Select(context.Background(), "x") }()
	<-store.started

	if err := v.Select(context.Background(), ""); err != nil {
		t.Fatalf("Select(\"\") error = %v", err)
	}
	store.release("x")

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("Select(x) error = %v, want ErrSuperseded", err)
	}
	if v.State().Found() {
		t.Error("superseded response was applied")
	}
}

func TestEntityView_NotFound(t *testing.T) {
	v := NewEntityView(newMemStore(makeRows(1)), nil)

	if err := v.Select(context.Background(), "missing"); err != nil {
		t.Fatalf("Select error = %v, want nil for not found", err)
	}
	st := v.State()
	if st.Found() || st.Loading || st.Err != nil || st.ID != "missing" {
		t.Errorf("state = %+v, want resolved without tool", st)
	}
}

func TestEntityView_Found(t *testing.T) {
	v := NewEntityView(newMemStore(makeRows(2)), nil)

	if err := v.Select(context.Background(), "tool-00001"); err != nil {
		t.Fatalf("Select error = %v", err)
	}
	st := v.State()
	if !st.Found() || st.Tool.Name != "Tool 1" || st.Tool.Category != CategoryData {
		t.Errorf("state = %+v", st)
	}

	st.Tool.Name = "mutated"
	if v.State().Tool.Name != "Tool 1" {
		t.Error("State() exposed internal tool")
	}
}

func TestEntityView_StoreError(t *testing.T) {
	boom := errors.New("connection reset")
	v := NewEntityView(funcStore{get: func(context.Context, string) (Row, error) {
		return Row{}, boom
	}}, nil)

	if err := v.Select(context.Background(), "a"); !errors.Is(err, boom) {
		t.Fatalf("Select error = %v, want %v", err, boom)
	}
	st := v.State()
	if !errors.Is(st.Err, boom) || st.Loading || st.Found() {
		t.Errorf("state = %+v", st)
	}
}

func TestEntityView_CancelledSelectDoesNotApply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var reqErr error
	v := NewEntityView(funcStore{get: func(reqCtx context.Context, id string) (Row, error) {
		cancel()
		reqErr = reqCtx.Err()
		return Row{ID: id}, nil
	}}, nil)

	if err := v.Select(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Select error = %v, want context.Canceled", err)
	}
	if reqErr != nil {
		t.Errorf("in-flight request saw cancellation: %v", reqErr)
	}
	st := v.State()
	if st.Found() {
		t.Error("cancelled response was applied")
	}
	if st.Loading {
		t.Error("Loading still set after cancelled select")
	}
}

func TestEntityView_Close(t *testing.T) {
	v := NewEntityView(newMemStore(makeRows(1)), nil)
	v.Close()
	if err := v.Select(context.Background(), "tool-00000"); !errors.Is(err, ErrClosed) {
		t.Errorf("Select after Close = %v, want ErrClosed", err)
	}
}

func TestFetchOne(t *testing.T) {
	store := newMemStore(makeRows(1))

	tool, err := FetchOne(context.Background(), store, "tool-00000")
	if err != nil || tool.ID != "tool-00000" {
		t.Fatalf("FetchOne = (%+v, %v)", tool, err)
	}
	if _, err := FetchOne(context.Background(), store, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchOne(nope) error = %v, want ErrNotFound", err)
	}
	if _, err := FetchOne(context.Background(), nil, "x"); !errors.Is(err, ErrNilStore) {
		t.Errorf("FetchOne(nil store) error = %v, want ErrNilStore", err)
	}
}
