package resilience

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// Snapshot is a point-in-time view of a breaker.
type Snapshot struct {
	State    CircuitState
	Failures int
	Trips    int
	OpenedAt time.Time
}

// CircuitBreaker trips after consecutive failures of a dependency and lets
// a bounded number of probes through once the open timeout has passed.
type CircuitBreaker struct {
	mu    sync.Mutex
	cfg   CircuitBreakerConfig
	clock clockwork.Clock

	state    CircuitState
	failures int
	probes   int
	passed   int
	trips    int
	openedAt time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, clock clockwork.Clock) *CircuitBreaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		clock: clock,
		state: CircuitStateClosed,
	}
}

// Do runs fn when the breaker allows it and records the outcome. Errors for
// which countable returns false pass through without counting as failures.
func (b *CircuitBreaker) Do(fn func() error, countable func(error) bool) error {
	if err := b.acquire(); err != nil {
		return err
	}
	err := fn()
	b.release(err != nil && (countable == nil || countable(err)))
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	return b.Snapshot().State
}

func (b *CircuitBreaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.settle()
	return Snapshot{
		State:    b.state,
		Failures: b.failures,
		Trips:    b.trips,
		OpenedAt: b.openedAt,
	}
}

func (b *CircuitBreaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.settle()
	switch b.state {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *CircuitBreaker) release(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	halfOpen := b.state == CircuitStateHalfOpen
	if halfOpen && b.probes > 0 {
		b.probes--
	}

	switch {
	case failed && halfOpen:
		b.trip()
	case failed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case halfOpen:
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.state = CircuitStateClosed
			b.failures = 0
			b.openedAt = time.Time{}
		}
	default:
		b.failures = 0
	}
}

// settle moves an open breaker to half-open once its timeout has passed.
// Callers hold mu.
func (b *CircuitBreaker) settle() {
	if b.state != CircuitStateOpen || b.clock.Since(b.openedAt) < b.cfg.OpenTimeout {
		return
	}
	b.state = CircuitStateHalfOpen
	b.probes = 0
	b.passed = 0
}

func (b *CircuitBreaker) trip() {
	if b.state != CircuitStateOpen {
		b.trips++
	}
	b.state = CircuitStateOpen
	b.openedAt = b.clock.Now()
	b.probes = 0
	b.passed = 0
}
