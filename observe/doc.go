// Package observe provides observability primitives for catalog
// synchronization.
//
// It instruments the two kinds of I/O the catalog performs (remote store
// requests and stats cache accesses) with OpenTelemetry spans and metrics,
// and offers a small JSON structured logger. It performs no I/O of its own
// beyond exporter setup; callers inject the pieces they need.
package observe
