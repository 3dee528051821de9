// Package catalog keeps a server-owned tool catalog synchronized into memory.
//
// It provides the category normalizer, the row mapper that turns untrusted
// store rows into Tool values, a paginated full-scan fetcher with a stable
// category-then-name order, and two owner-scoped views:
//
//   - ListView holds the result of the most recent full scan.
//   - EntityView holds the tool for the currently selected identifier.
//
// Both views discard results that arrive after their owner context has ended
// or after a newer request has replaced them.
//
// The remote store is reached only through the Store interface.
package catalog
