// Package store decorates the remote store ports with telemetry and
// resilience.
//
// Catalog wraps a catalog.Store and Stats wraps a stats.Source. Every attempt
// is traced, counted and logged through an observe.Middleware, and the whole
// call runs inside a resilience.Executor. A missing row is never retried and
// never trips the circuit breaker.
//
// Backends live in the subpackages postgres and rest.
package store
