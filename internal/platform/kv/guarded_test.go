package kv

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	*MemoryStore
	err   error
	calls int
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.calls++
	if s.err != nil {
		return nil, false, s.err
	}
	return s.MemoryStore.Get(ctx, key)
}

func TestGuarded_OpensAfterFailuresAndRecovers(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	inner := &flakyStore{MemoryStore: NewMemoryStore(0), err: errors.New("disk I/O error")}
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Second,
		HalfOpenMaxReq:   1,
	}, clock)
	store := NewGuarded(inner, breaker, logging.NewNop())

	for i := 0; i < 2; i++ {
		_, _, err := store.Get(ctx, "bp_drafts")
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrUnavailable))
	}

	_, _, err := store.Get(ctx, "bp_drafts")
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, 2, inner.calls, "open circuit must not reach the store")

	inner.err = nil
	clock.Advance(2 * time.Second)
	_, found, err := store.Get(ctx, "bp_drafts")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, resilience.CircuitStateClosed, breaker.State())
}

func TestGuarded_QuotaDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{FailureThreshold: 1}, clockwork.NewFakeClock())
	store := NewGuarded(NewMemoryStore(4), breaker, nil)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, store.Set(ctx, "bp_insights", []byte("too large")), ErrQuotaExceeded)
	}
	require.Equal(t, resilience.CircuitStateClosed, breaker.State())
}
