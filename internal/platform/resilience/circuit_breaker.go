// Package resilience guards outbound provider calls: a consecutive-failure
// circuit breaker and a singleflight group for collapsing duplicate fetches.
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

// CircuitBreaker trips after a run of consecutive failures. State is derived
// from openUntil rather than stored: zero means closed, a future deadline
// means open, a past one means half-open until enough probes succeed.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	failures  int
	openUntil time.Time
	probes    int
	probeWins int
	now       func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg.normalized(), now: time.Now}
}

// Allow reports whether a request may proceed. While half-open, at most
// HalfOpenMaxReq probes run concurrently.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
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

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.probeWins++
		if b.probeWins >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.reset()
		}
	}
	// A success arriving while open is a result from before the trip; ignore.
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.trip()
	case CircuitStateOpen:
		b.trip()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *CircuitBreaker) stateLocked() CircuitState {
	switch {
	case b.openUntil.IsZero():
		return CircuitStateClosed
	case b.now().Before(b.openUntil):
		return CircuitStateOpen
	default:
		return CircuitStateHalfOpen
	}
}

func (b *CircuitBreaker) trip() {
	b.openUntil = b.now().Add(b.cfg.OpenTimeout)
	b.failures = 0
	b.probes = 0
	b.probeWins = 0
}

func (b *CircuitBreaker) reset() {
	b.openUntil = time.Time{}
	b.failures = 0
	b.probes = 0
	b.probeWins = 0
}
