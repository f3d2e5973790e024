// Package cache provides an in-process cache-aside store layered over a
// durable backing store. Entries are unbounded in count and evicted only by
// explicit invalidation.
package cache

import (
	"context"
	"sync"

	"github.com/microshop-io/microshop/internal/port"
)

// Store is a write-through EntityCache. All operations that touch the
// backing store run under the store lock, so concurrent Get/Put/Invalidate
// on the same Store are linearizable with respect to backing-store writes:
// readers never observe a value older than the last completed write, and a
// Get racing an Invalidate can never resurrect a deleted entry.
type Store[V any] struct {
	backing port.CacheBacking[V]

	mu      sync.RWMutex
	entries map[string]V
}

func New[V any](backing port.CacheBacking[V]) *Store[V] {
	return &Store[V]{
		backing: backing,
		entries: make(map[string]V),
	}
}

// Get returns the cached value for key, reading through to the backing
// store on a miss. Absence is not cached, so a later write is visible to
// the next read.
func (s *Store[V]) Get(ctx context.Context, key string) (V, bool, error) {
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return value, true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A writer may have populated the entry while we waited for the lock.
	if value, ok := s.entries[key]; ok {
		return value, true, nil
	}

	value, found, err := s.backing.Load(ctx, key)
	if err != nil || !found {
		var zero V
		return zero, false, err
	}
	s.entries[key] = value
	return value, true, nil
}

// Put writes value to the backing store and then, only if that succeeded,
// overwrites the cache entry.
func (s *Store[V]) Put(ctx context.Context, key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backing.Store(ctx, key, value); err != nil {
		return err
	}
	s.entries[key] = value
	return nil
}

// Invalidate deletes key from the backing store and then evicts the cache
// entry. When the backing delete fails the entry is left in place so the
// cache never disagrees with a store that still holds the value.
func (s *Store[V]) Invalidate(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backing.Delete(ctx, key); err != nil {
		return err
	}
	delete(s.entries, key)
	return nil
}

// Len reports the number of cached entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Funcs adapts three closures into a CacheBacking, saving callers a named
// type when wiring a store adapter behind a cache.
type Funcs[V any] struct {
	LoadFunc   func(ctx context.Context, key string) (V, bool, error)
	StoreFunc  func(ctx context.Context, key string, value V) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (f Funcs[V]) Load(ctx context.Context, key string) (V, bool, error) {
	return f.LoadFunc(ctx, key)
}

func (f Funcs[V]) Store(ctx context.Context, key string, value V) error {
	return f.StoreFunc(ctx, key, value)
}

func (f Funcs[V]) Delete(ctx context.Context, key string) error {
	return f.DeleteFunc(ctx, key)
}
