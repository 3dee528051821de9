// Package recent keeps a short list of recently used tool identifiers.
//
// The list is most-recent-first, holds no duplicates and is capped (8 by
// default). It is persisted as one JSON array under a single key of an opaque
// key-value store; MemoryStore and SQLiteStore are provided.
package recent
