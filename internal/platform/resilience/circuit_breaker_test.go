package resilience

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

var (
	errIO    = errors.New("io")
	errQuota = errors.New("quota")
)

func newTestBreaker(threshold int, openTimeout time.Duration, halfOpen int) (*CircuitBreaker, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC))
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpen,
	}, clock)
	return b, clock
}

func fail() error { return errIO }
func succeed() error { return nil }

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, clock := newTestBreaker(2, 5*time.Second, 1)

	if err := b.Do(fail, nil); !errors.Is(err, errIO) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail, nil)
	snap := b.Snapshot()
	if snap.State != CircuitStateOpen || snap.Trips != 1 {
		t.Fatalf("expected open after threshold failures, got %+v", snap)
	}

	called := false
	err := b.Do(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open circuit to reject without calling fn, got %v called=%v", err, called)
	}

	clock.Advance(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Do(succeed, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, clock := newTestBreaker(1, time.Second, 1)

	_ = b.Do(fail, nil)
	clock.Advance(2 * time.Second)

	err := b.Do(func() error {
		if err := b.Do(succeed, nil); !errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("expected concurrent probe rejected, got %v", err)
		}
		return errIO
	}, nil)
	if !errors.Is(err, errIO) {
		t.Fatalf("expected probe error, got %v", err)
	}

	snap := b.Snapshot()
	if snap.State != CircuitStateOpen || snap.Trips != 2 {
		t.Fatalf("expected reopen after failed probe, got %+v", snap)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker(2, time.Minute, 1)

	_ = b.Do(fail, nil)
	_ = b.Do(succeed, nil)
	_ = b.Do(fail, nil)
	if snap := b.Snapshot(); snap.State != CircuitStateClosed || snap.Failures != 1 {
		t.Fatalf("expected one consecutive failure while closed, got %+v", snap)
	}
}

func TestCircuitBreaker_DoSkipsUncountableErrors(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute, 1)

	for i := 0; i < 3; i++ {
		err := b.Do(func() error { return errQuota }, func(err error) bool { return !errors.Is(err, errQuota) })
		if !errors.Is(err, errQuota) {
			t.Fatalf("expected quota error passthrough, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("uncountable errors must not trip the breaker, got %s", state)
	}

	_ = b.Do(fail, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after countable failure, got %s", state)
	}
}
