// Package cache holds the in-process TTL store shared by the repository
// decorators and the rostered-name cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

// sweepEvery is how many writes pass between full expiry sweeps.
const sweepEvery = 256

type item struct {
	value    any
	deadline time.Time // zero means no expiry
}

func (it item) liveAt(now time.Time) bool {
	return it.deadline.IsZero() || now.Before(it.deadline)
}

// Stats counts lookups since the store was created.
type Stats struct {
	Hits   uint64
	Misses uint64
	Loads  uint64
}

// Store is a TTL map. A ttl of zero keeps entries until Delete. Concurrent
// GetOrLoad calls for one key share a single loader call.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	items  map[string]item
	writes int

	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
	loads  atomic.Uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, items: make(map[string]item)}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	it, found := s.items[key]
	s.mu.RUnlock()

	switch {
	case !found:
	case it.liveAt(now):
		s.hits.Add(1)
		return it.value, true
	default:
		s.mu.Lock()
		if cur, ok := s.items[key]; ok && !cur.liveAt(now) {
			delete(s.items, key)
		}
		s.mu.Unlock()
	}
	s.misses.Add(1)
	return nil, false
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	now := s.now()
	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = it
	if s.writes++; s.writes%sweepEvery == 0 {
		s.sweepLocked(now)
	}
}

func (s *Store) sweepLocked(now time.Time) {
	for k, it := range s.items {
		if !it.liveAt(now) {
			delete(s.items, k)
		}
	}
}

// Delete drops key and detaches any in-flight load so the next caller
// starts a fresh one.
func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	s.group.Forget(key)
}

// Len counts stored entries, expired ones included until they are read or
// swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Loads: s.loads.Load()}
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers. Loader errors are not cached. A caller whose ctx ends
// first returns ctx.Err() while the shared load keeps running detached from
// that cancellation.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		if v, ok := s.Get(detached, key); ok {
			return v, nil
		}
		s.loads.Add(1)
		v, err := loader(detached)
		if err != nil {
			return nil, err
		}
		s.Set(detached, key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Load is GetOrLoad with a typed result.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) { return loader(ctx) })
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, v)
	}
	return typed, nil
}
