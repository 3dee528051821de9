// Package stats caches the per-tool statistics table and derives rankings
// from it.
//
// A Cache holds one Snapshot at a time. Snapshots are immutable and keep the
// source's row order, which the ranking functions use as their tie-break.
package stats
