package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Store memoizes values per key for a bounded time, evicting the least
// recently used entry once capacity is reached. It is safe for concurrent use.
type Store[V any] struct {
	name    string
	entries *expirable.LRU[string, V]
	flight  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore builds a store holding at most size entries for ttl each.
// size <= 0 means unbounded; ttl <= 0 means entries never expire.
func NewStore[V any](name string, size int, ttl time.Duration) *Store[V] {
	if size < 0 {
		size = 0
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store[V]{
		name:    name,
		entries: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (s *Store[V]) Name() string {
	return s.name
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	return s.entries.Get(key)
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	s.entries.Add(key, value)
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.entries.Remove(key)
}

func (s *Store[V]) Len() int {
	return s.entries.Len()
}

// Stats reports lookups answered from memory and lookups that had to load.
func (s *Store[V]) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// GetOrLoad returns the cached value for key or calls loader once per key
// across concurrent callers. Loader errors are returned and never cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		s.hits.Add(1)
		return value, nil
	}
	s.misses.Add(1)

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(V)
	if !ok {
		return zero, nil
	}
	return typed, nil
}
