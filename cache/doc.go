// Package cache provides a TTL-bounded snapshot loader.
//
// A Loader holds at most one value of type T together with the time it was
// loaded. Reads inside the freshness window are served from memory; the first
// read after expiry triggers one refresh that concurrent readers share. A
// failed refresh keeps the previous value in place.
package cache
