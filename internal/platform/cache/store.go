package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a process-local TTL cache of V values. Concurrent loads of the
// same key share one loader call. A zero TTL never expires.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	clock   clockwork.Clock
	flight  singleflight.Group
}

func NewStore[V any](ttl time.Duration, clock clockwork.Clock) *Store[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && s.expired(e) {
		s.Delete(key)
		ok = false
	}
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(key string, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every entry.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or stores what load returns.
// Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	var zero V
	if load == nil {
		return zero, errors.New("loader is required")
	}
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(key); ok {
			return cached, nil
		}
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(V), nil
}

func (s *Store[V]) expired(e entry[V]) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.clock.Now())
}
