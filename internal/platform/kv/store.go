// Package kv defines the synchronous byte store the persistence layer is
// built on, plus an in-memory implementation and a circuit-breaking wrapper.
package kv

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnavailable reports that the store cannot be used at all.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded reports that a write would exceed the store capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a local key-value byte store. Implementations must be safe for
// concurrent use; callers get no atomicity across keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const probeKey = "__storage_test__"

// Available reports whether the store accepts a write and a delete.
func Available(ctx context.Context, store Store) bool {
	if store == nil {
		return false
	}
	if err := store.Set(ctx, probeKey, []byte(probeKey)); err != nil {
		return false
	}
	return store.Delete(ctx, probeKey) == nil
}
