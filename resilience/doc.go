// Package resilience guards calls to the remote store.
//
// The patterns compose through an Executor in a fixed order: rate limiter,
// bulkhead, circuit breaker, retry, timeout. Errors marked with Permanent
// (for example "not found") pass straight through: they are never retried
// and never count against the circuit breaker.
//
//	exec := resilience.NewExecutor(
//	    resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 20, Burst: 5})),
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	rows, err := resilience.Do(ctx, exec, func(ctx context.Context) ([]Row, error) {
//	    return store.ScanPage(ctx, q)
//	})
package resilience
