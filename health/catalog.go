package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/stats"
)

// StatsStater exposes the state of a statistics cache.
type StatsStater interface {
	State() stats.State
}

// StatsFreshnessChecker reports on the statistics cache without loading it.
//
// Healthy while the snapshot is fresh; degraded while a stale snapshot is
// served or the last refresh failed; unhealthy when no snapshot was ever
// loaded and the last attempt failed.
type StatsFreshnessChecker struct {
	cache StatsStater
	now   func() time.Time
}

// NewStatsFreshnessChecker creates a checker over cache.
func NewStatsFreshnessChecker(cache StatsStater) *StatsFreshnessChecker {
	return &StatsFreshnessChecker{cache: cache, now: time.Now}
}

// Name returns "stats".
func (c *StatsFreshnessChecker) Name() string { return "stats" }

// Check inspects the cache state.
func (c *StatsFreshnessChecker) Check(context.Context) Result {
	st := c.cache.State()
	details := map[string]any{
		"entries": st.Snapshot.Len(),
		"loading": st.Loading,
	}
	if captured := st.Snapshot.CapturedAt(); !captured.IsZero() {
		details["age"] = c.now().Sub(captured).Round(time.Second).String()
	}
	if st.LastError != nil {
		details["last_error"] = st.LastError.Error()
	}

	switch {
	case st.Snapshot == nil && st.LastError != nil:
		return Unhealthy("statistics never loaded", st.LastError).WithDetails(details)
	case st.Snapshot == nil:
		return Healthy("statistics not loaded yet").WithDetails(details)
	case st.LastError != nil:
		return Degraded("serving previous statistics after failed refresh").WithDetails(details)
	case !st.Fresh:
		return Degraded("statistics are stale").WithDetails(details)
	default:
		return Healthy("statistics are fresh").WithDetails(details)
	}
}

// Pinger is implemented by stores that can test connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreChecker pings the remote store.
type StoreChecker struct {
	name   string
	pinger Pinger
}

// NewStoreChecker creates a checker named name over pinger.
func NewStoreChecker(name string, pinger Pinger) *StoreChecker {
	return &StoreChecker{name: name, pinger: pinger}
}

// Name returns the checker name.
func (c *StoreChecker) Name() string { return c.name }

// Check pings the store.
func (c *StoreChecker) Check(ctx context.Context) Result {
	if err := c.pinger.Ping(ctx); err != nil {
		return Unhealthy(fmt.Sprintf("%s unreachable", c.name), err)
	}
	return Healthy(fmt.Sprintf("%s reachable", c.name))
}

// CircuitChecker reports the state of a circuit breaker.
type CircuitChecker struct {
	name string
	cb   *resilience.CircuitBreaker
}

// NewCircuitChecker creates a checker named name over cb.
func NewCircuitChecker(name string, cb *resilience.CircuitBreaker) *CircuitChecker {
	return &CircuitChecker{name: name, cb: cb}
}

// Name returns the checker name.
func (c *CircuitChecker) Name() string { return c.name }

// Check maps closed to healthy, half-open to degraded and open to unhealthy.
func (c *CircuitChecker) Check(context.Context) Result {
	state := c.cb.State()
	details := map[string]any{"state": state.String(), "failures": c.cb.Failures()}
	switch state {
	case resilience.StateOpen:
		return Unhealthy("circuit open", resilience.ErrCircuitOpen).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit probing").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}
