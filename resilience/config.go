package resilience

import "time"

// Config is the file/env form of an Executor. Zero sections are left out.
type Config struct {
	Timeout   time.Duration   `mapstructure:"timeout"`
	Retry     RetrySettings   `mapstructure:"retry"`
	Circuit   CircuitSettings `mapstructure:"circuit"`
	RateLimit RateSettings    `mapstructure:"rate_limit"`
	Bulkhead  BulkSettings    `mapstructure:"bulkhead"`
}

// RetrySettings configures retries.
type RetrySettings struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	Backoff      string        `mapstructure:"backoff"` // exponential|linear|constant
	Jitter       bool          `mapstructure:"jitter"`
}

// CircuitSettings configures the circuit breaker.
type CircuitSettings struct {
	MaxFailures  int           `mapstructure:"max_failures"`
	ResetTimeout time.Duration `mapstructure:"reset_timeout"`
}

// RateSettings configures the rate limiter.
type RateSettings struct {
	Rate    float64       `mapstructure:"rate"`
	Burst   int           `mapstructure:"burst"`
	MaxWait time.Duration `mapstructure:"max_wait"`
}

// BulkSettings configures the bulkhead.
type BulkSettings struct {
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	MaxWait       time.Duration `mapstructure:"max_wait"`
}

// NewExecutorFromConfig builds an Executor from cfg. Rate-limited callers
// wait for a token rather than failing fast.
func NewExecutorFromConfig(cfg Config, extra ...ExecutorOption) *Executor {
	var opts []ExecutorOption

	if cfg.RateLimit.Rate > 0 {
		opts = append(opts, WithRateLimiter(NewRateLimiter(RateLimiterConfig{
			Rate:        cfg.RateLimit.Rate,
			Burst:       cfg.RateLimit.Burst,
			WaitOnLimit: true,
			MaxWait:     cfg.RateLimit.MaxWait,
		})))
	}
	if cfg.Bulkhead.MaxConcurrent > 0 {
		opts = append(opts, WithBulkhead(NewBulkhead(BulkheadConfig{
			MaxConcurrent: cfg.Bulkhead.MaxConcurrent,
			MaxWait:       cfg.Bulkhead.MaxWait,
		})))
	}
	if cfg.Circuit.MaxFailures > 0 {
		opts = append(opts, WithCircuitBreaker(NewCircuitBreaker(CircuitBreakerConfig{
			MaxFailures:  cfg.Circuit.MaxFailures,
			ResetTimeout: cfg.Circuit.ResetTimeout,
		})))
	}
	if cfg.Retry.MaxAttempts > 1 {
		opts = append(opts, WithRetry(NewRetry(RetryConfig{
			MaxAttempts:  cfg.Retry.MaxAttempts,
			InitialDelay: cfg.Retry.InitialDelay,
			MaxDelay:     cfg.Retry.MaxDelay,
			Strategy:     ParseBackoff(cfg.Retry.Backoff),
			Jitter:       cfg.Retry.Jitter,
		})))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}

	return NewExecutor(append(opts, extra...)...)
}
