package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in a map. A positive quota caps the total number
// of key and value bytes, the way browser storage caps an origin.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string][]byte
	used     int
	quota    int
	disabled bool
}

func NewMemoryStore(quotaBytes int) *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
		quota: quotaBytes,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.disabled {
		return nil, false, ErrUnavailable
	}
	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return ErrUnavailable
	}

	used := s.used
	if old, ok := s.items[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if s.quota > 0 && used > s.quota {
		return ErrQuotaExceeded
	}

	s.items[key] = append([]byte(nil), value...)
	s.used = used
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return ErrUnavailable
	}
	if old, ok := s.items[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.items, key)
	}
	return nil
}

// SetDisabled switches the store into (or out of) the unavailable state.
func (s *MemoryStore) SetDisabled(disabled bool) {
	s.mu.Lock()
	s.disabled = disabled
	s.mu.Unlock()
}

// Used returns the number of bytes currently held.
func (s *MemoryStore) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
