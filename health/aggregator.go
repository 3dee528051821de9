package health

import (
	"context"
	"sync"
	"time"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout bounds a whole CheckAll run.
	// Default: 10 seconds
	Timeout time.Duration

	// Sequential runs checks one at a time instead of concurrently.
	Sequential bool
}

// NamedResult is one entry of a Report.
type NamedResult struct {
	Name string `json:"name"`
	Result
}

// Report is the outcome of CheckAll, in registration order.
type Report struct {
	Status Status        `json:"status"`
	Checks []NamedResult `json:"checks"`
}

// Aggregator runs a set of checkers together.
type Aggregator struct {
	config AggregatorConfig

	mu       sync.RWMutex
	checkers []Checker
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config AggregatorConfig) *Aggregator {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Aggregator{config: config}
}

// Register adds checker, replacing any checker with the same name in place.
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, c := range a.checkers {
		if c.Name() == checker.Name() {
			a.checkers[i] = checker
			return
		}
	}
	a.checkers = append(a.checkers, checker)
}

// Names returns the registered checker names in order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.checkers))
	for i, c := range a.checkers {
		names[i] = c.Name()
	}
	return names
}

// Check runs a single named check.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	for _, c := range a.snapshot() {
		if c.Name() == name {
			ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
			defer cancel()
			return run(ctx, c), nil
		}
	}
	return Result{}, ErrCheckerNotFound
}

// CheckAll runs every registered check under the aggregator timeout.
func (a *Aggregator) CheckAll(ctx context.Context) Report {
	checkers := a.snapshot()
	results := make([]NamedResult, len(checkers))

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	if a.config.Sequential {
		for i, c := range checkers {
			results[i] = NamedResult{Name: c.Name(), Result: run(ctx, c)}
		}
	} else {
		var wg sync.WaitGroup
		for i, c := range checkers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = NamedResult{Name: c.Name(), Result: run(ctx, c)}
			}()
		}
		wg.Wait()
	}

	return Report{Status: Overall(results), Checks: results}
}

// Overall returns the worst status in results, or healthy when empty.
func Overall(results []NamedResult) Status {
	worst := StatusHealthy
	for _, r := range results {
		worst = max(worst, r.Status)
	}
	return worst
}

func (a *Aggregator) snapshot() []Checker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Checker(nil), a.checkers...)
}

// run executes c, giving up when ctx ends.
func run(ctx context.Context, c Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)

	go func() {
		r := c.Check(ctx)
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
		done <- r
	}()

	select {
	case r := <-done:
		r.Duration = time.Since(start)
		return r
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}
}
