// Package cache holds last-known-good copies of lists fetched from the proxy.
// Entries are never authoritative: after any mutation the owner invalidates and re-lists.
package cache

import "time"

// Store keeps one snapshot per key.
type Store[K comparable, V any] interface {
	// Get returns the snapshot for key, stale or not.
	Get(key K) (Entry[V], bool)

	// Set replaces the snapshot for key and marks it fresh.
	Set(key K, value V)

	// Invalidate marks the snapshot stale but keeps its value visible. It also moves the
	// key to a new generation, even when no snapshot is held yet.
	Invalidate(key K)

	// Generation is the current generation of key. Capture it before fetching.
	Generation(key K) uint64

	// SetIfGeneration stores value only when key is still at gen, so a fetch that started
	// before an invalidation cannot overwrite a later one.
	SetIfGeneration(key K, value V, gen uint64) bool

	// Fresh reports whether key holds a snapshot that has not been invalidated.
	Fresh(key K) bool

	// Clear drops every snapshot.
	Clear()
}

// Entry is a snapshot and its bookkeeping.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
	Stale     bool
}
