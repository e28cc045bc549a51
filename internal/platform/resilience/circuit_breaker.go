package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is called outside the breaker lock after every transition.
type StateChangeFunc func(name string, from, to CircuitState)

// Counts is a point-in-time view of a breaker.
type Counts struct {
	State       CircuitState
	Failures    int
	Probes      int
	ProbeWins   int
	OpenedAt    time.Time
	Transitions int
}

// CircuitBreaker guards one upstream (a provider endpoint, a table).
// Closed counts consecutive countable failures; Open rejects until the
// cool-down passes; HalfOpen admits a fixed number of probes and closes only
// when all of them succeed.
type CircuitBreaker struct {
	name      string
	threshold int
	coolDown  time.Duration
	probes    int
	onChange  StateChangeFunc
	now       func() time.Time

	mu          sync.Mutex
	state       CircuitState
	failures    int
	openedAt    time.Time
	inFlight    int
	wins        int
	transitions int
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	})
	return newBreaker(cfg)
}

func newBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:      cfg.Name,
		threshold: cfg.FailureThreshold,
		coolDown:  cfg.OpenTimeout,
		probes:    cfg.HalfOpenMaxReq,
		onChange:  cfg.OnStateChange,
		now:       time.Now,
		state:     CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Allow reserves a slot for one call. Every nil return must be followed by
// exactly one RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	from := b.state
	err := b.admitLocked(b.now())
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return err
}

func (b *CircuitBreaker) admitLocked(now time.Time) error {
	if b.state == CircuitStateOpen {
		if now.Sub(b.openedAt) < b.coolDown {
			return ErrCircuitOpen
		}
		b.moveLocked(CircuitStateHalfOpen, now)
	}
	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.probes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.record(true)
}

func (b *CircuitBreaker) RecordFailure() {
	b.record(false)
}

func (b *CircuitBreaker) record(ok bool) {
	if b == nil {
		return
	}

	b.mu.Lock()
	now := b.now()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		if ok {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.threshold {
			b.moveLocked(CircuitStateOpen, now)
		}
	case CircuitStateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		if !ok {
			b.moveLocked(CircuitStateOpen, now)
			break
		}
		b.wins++
		if b.wins >= b.probes && b.inFlight == 0 {
			b.moveLocked(CircuitStateClosed, now)
		}
	case CircuitStateOpen:
		// A call admitted before the trip finished late; restart the cool-down.
		if !ok {
			b.openedAt = now
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// moveLocked resets the per-state counters and stamps the transition.
func (b *CircuitBreaker) moveLocked(to CircuitState, now time.Time) {
	b.state = to
	b.inFlight = 0
	b.wins = 0
	b.transitions++
	switch to {
	case CircuitStateOpen:
		b.openedAt = now
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from != to && b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}

// State reports HalfOpen for an open breaker whose cool-down has elapsed, even
// before the next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.effectiveStateLocked()
}

func (b *CircuitBreaker) effectiveStateLocked() CircuitState {
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.coolDown {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) Counts() Counts {
	if b == nil {
		return Counts{State: CircuitStateClosed}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return Counts{
		State:       b.effectiveStateLocked(),
		Failures:    b.failures,
		Probes:      b.inFlight,
		ProbeWins:   b.wins,
		OpenedAt:    b.openedAt,
		Transitions: b.transitions,
	}
}

// Execute runs fn when the breaker admits the call and records the outcome.
// Errors for which countable returns false (a 404, a bad request) do not trip
// the breaker. A nil breaker always runs fn.
func (b *CircuitBreaker) Execute(fn func() error, countable func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	b.record(err == nil || (countable != nil && !countable(err)))
	return err
}
