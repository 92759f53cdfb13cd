package kv

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/resilience"
)

// Guarded fails fast with ErrUnavailable while the underlying store keeps
// failing. Quota errors and context cancellation do not trip the breaker.
type Guarded struct {
	next    Store
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewGuarded(next Store, breaker *resilience.CircuitBreaker, logger *logging.Logger) *Guarded {
	if logger == nil {
		logger = logging.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := g.do(ctx, "get", key, func() error {
		var err error
		value, found, err = g.next.Get(ctx, key)
		return err
	})
	return value, found, err
}

func (g *Guarded) Set(ctx context.Context, key string, value []byte) error {
	return g.do(ctx, "set", key, func() error {
		return g.next.Set(ctx, key, value)
	})
}

func (g *Guarded) Delete(ctx context.Context, key string) error {
	return g.do(ctx, "delete", key, func() error {
		return g.next.Delete(ctx, key)
	})
}

func (g *Guarded) do(ctx context.Context, op, key string, fn func() error) error {
	err := g.breaker.Do(fn, countsAsFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		g.logger.WarnContext(ctx, "storage circuit open", "op", op, "key", key, "state", g.breaker.State())
		return errors.Wrapf(ErrUnavailable, "kv %s %s: %v", op, key, err)
	}
	return err
}

func countsAsFailure(err error) bool {
	return !errors.Is(err, ErrQuotaExceeded) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
