package port

import "context"

// EntityCache is a read-through/write-through cache over a backing store.
// Get consults the cache first and falls back to the backing store on a
// miss; Put writes the backing store before the cache; Invalidate deletes
// from the backing store before evicting. A service fronted by an
// EntityCache must behave identically with or without it, modulo latency.
type EntityCache[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Put(ctx context.Context, key string, value V) error
	Invalidate(ctx context.Context, key string) error
}

// CacheBacking is the durable store an EntityCache shields. Load reports
// absence through its bool, not an error.
type CacheBacking[V any] interface {
	Load(ctx context.Context, key string) (V, bool, error)
	Store(ctx context.Context, key string, value V) error
	Delete(ctx context.Context, key string) error
}
