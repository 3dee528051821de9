package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecutor_NilRunsDirectly(t *testing.T) {
	var e *Executor
	v, err := Do(context.Background(), e, func(context.Context) (int, error) { return 4, nil })
	if err != nil || v != 4 {
		t.Errorf("Do() = (%d, %v), want (4, nil)", v, err)
	}
	if e.CircuitBreaker() != nil {
		t.Error("nil executor returned a breaker")
	}
}

func TestExecutor_RetryInsideCircuit(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1})
	e := NewExecutor(
		WithCircuitBreaker(cb),
		WithRetry(NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})),
		WithTimeout(time.Second),
	)

	attempts := 0
	v, err := Do(context.Background(), e, func(context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})
	if err != nil || v != "ok" || attempts != 3 {
		t.Fatalf("Do() = (%q, %v) after %d attempts", v, err, attempts)
	}
	if cb.State() != StateClosed {
		t.Errorf("breaker state = %v, want closed (retries happen inside it)", cb.State())
	}
}

func TestExecutor_DoReturnsZeroOnError(t *testing.T) {
	e := NewExecutor()
	boom := errors.New("boom")
	v, err := Do(context.Background(), e, func(context.Context) ([]int, error) { return []int{1}, boom })
	if err != boom || v != nil {
		t.Errorf("Do() = (%v, %v), want (nil, boom)", v, err)
	}
}

func TestNewExecutorFromConfig(t *testing.T) {
	e := NewExecutorFromConfig(Config{
		Timeout:   time.Second,
		Retry:     RetrySettings{MaxAttempts: 2, InitialDelay: time.Millisecond, Backoff: "constant"},
		Circuit:   CircuitSettings{MaxFailures: 4, ResetTimeout: time.Minute},
		RateLimit: RateSettings{Rate: 50, Burst: 5},
		Bulkhead:  BulkSettings{MaxConcurrent: 2},
	})

	if e.rateLimiter == nil || e.bulkhead == nil || e.circuitBreaker == nil || e.retry == nil || e.timeout == nil {
		t.Fatalf("executor missing a pattern: %+v", e)
	}
	if e.retry.Config().Strategy != BackoffConstant {
		t.Errorf("retry strategy = %v, want constant", e.retry.Config().Strategy)
	}
	if !e.rateLimiter.config.WaitOnLimit {
		t.Error("rate limiter should wait on limit")
	}

	empty := NewExecutorFromConfig(Config{})
	if empty.rateLimiter != nil || empty.bulkhead != nil || empty.circuitBreaker != nil || empty.retry != nil || empty.timeout != nil {
		t.Errorf("zero config produced patterns: %+v", empty)
	}
}

func TestPermanent(t *testing.T) {
	base := errors.New("not found")
	p := Permanent(base)
	if !IsPermanent(p) || !errors.Is(p, base) || p.Error() != "not found" {
		t.Errorf("Permanent wrapper broken: %v", p)
	}
	if Permanent(nil) != nil || IsPermanent(nil) || IsPermanent(base) {
		t.Error("Permanent/IsPermanent nil handling wrong")
	}
	if !IsPermanent(context.Canceled) {
		t.Error("context.Canceled should be permanent")
	}
}
