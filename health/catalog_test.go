package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/stats"
)

type fixedState stats.State

func (f fixedState) State() stats.State { return stats.State(f) }

func TestStatsFreshnessChecker(t *testing.T) {
	snap := stats.NewSnapshot([]stats.Row{{ToolID: "a", ViewCount: 1}}, time.Now().Add(-time.Minute))
	boom := errors.New("refresh failed")

	tests := []struct {
		name  string
		state stats.State
		want  Status
	}{
		{"never loaded", stats.State{}, StatusHealthy},
		{"never loaded and failing", stats.State{LastError: boom}, StatusUnhealthy},
		{"fresh", stats.State{Snapshot: snap, Fresh: true}, StatusHealthy},
		{"stale", stats.State{Snapshot: snap}, StatusDegraded},
		{"previous snapshot after failure", stats.State{Snapshot: snap, Fresh: true, LastError: boom}, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewStatsFreshnessChecker(fixedState(tt.state))
			r := c.Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v (%s), want %v", r.Status, r.Message, tt.want)
			}
			if r.Details["entries"] != tt.state.Snapshot.Len() {
				t.Errorf("entries detail = %v", r.Details["entries"])
			}
		})
	}
}

func TestStatsFreshnessChecker_WithCache(t *testing.T) {
	src := stats.SourceFunc(func(context.Context) ([]stats.Row, error) {
		return []stats.Row{{ToolID: "a"}}, nil
	})
	cache, err := stats.NewCache(src)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	_ = cache.Snapshot(context.Background())

	r := NewStatsFreshnessChecker(cache).Check(context.Background())
	if r.Status != StatusHealthy {
		t.Errorf("Status = %v (%s), want healthy", r.Status, r.Message)
	}
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestStoreChecker(t *testing.T) {
	ok := NewStoreChecker("postgres", pingFunc(func(context.Context) error { return nil }))
	if r := ok.Check(context.Background()); r.Status != StatusHealthy || ok.Name() != "postgres" {
		t.Errorf("reachable store: %+v", r)
	}

	boom := errors.New("dial tcp: connection refused")
	bad := NewStoreChecker("postgres", pingFunc(func(context.Context) error { return boom }))
	r := bad.Check(context.Background())
	if r.Status != StatusUnhealthy || !errors.Is(r.Error, boom) {
		t.Errorf("unreachable store: %+v", r)
	}
}

func TestCircuitChecker(t *testing.T) {
	now := time.Unix(0, 0)
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		MaxFailures:  1,
		ResetTimeout: time.Second,
		Now:          func() time.Time { return now },
	})
	c := NewCircuitChecker("store.circuit", cb)

	if r := c.Check(context.Background()); r.Status != StatusHealthy {
		t.Errorf("closed: %v", r.Status)
	}

	_ = cb.Execute(context.Background(), func(context.Context) error { return errors.New("down") })
	if r := c.Check(context.Background()); r.Status != StatusUnhealthy {
		t.Errorf("open: %v", r.Status)
	}

	now = now.Add(time.Second)
	if r := c.Check(context.Background()); r.Status != StatusDegraded {
		t.Errorf("half-open: %v", r.Status)
	}
}
