package cache

import (
	"sync"
	"time"
)

// Snapshots is a mutex-guarded map-backed Store.
type Snapshots[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]Entry[V]
	gens  map[K]uint64
}

func NewSnapshots[K comparable, V any]() *Snapshots[K, V] {
	return &Snapshots[K, V]{items: make(map[K]Entry[V]), gens: make(map[K]uint64)}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

func (s *Snapshots[K, V]) Get(key K) (Entry[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	return e, ok
}

func (s *Snapshots[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = Entry[V]{Value: value, FetchedAt: now()}
}

func (s *Snapshots[K, V]) SetIfGeneration(key K, value V, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		return false
	}
	s.items[key] = Entry[V]{Value: value, FetchedAt: now()}
	return true
}

func (s *Snapshots[K, V]) Generation(key K) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

func (s *Snapshots[K, V]) Invalidate(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[key]++
	if e, ok := s.items[key]; ok {
		e.Stale = true
		s.items[key] = e
	}
}

func (s *Snapshots[K, V]) Fresh(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	return ok && !e.Stale
}

func (s *Snapshots[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[K]Entry[V])
	for k := range s.gens {
		s.gens[k]++
	}
}

var _ Store[any, any] = (*Snapshots[any, any])(nil)
