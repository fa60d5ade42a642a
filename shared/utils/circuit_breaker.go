package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	// StateClosed allows requests to pass through
	StateClosed CircuitState = "closed"
	// StateOpen blocks requests
	StateOpen CircuitState = "open"
	// StateHalfOpen lets a limited number of trial requests through
	StateHalfOpen CircuitState = "half-open"
)

// gauge values for hr_circuit_breaker_state
var stateValues = map[CircuitState]float64{
	StateClosed:   0,
	StateHalfOpen: 1,
	StateOpen:     2,
}

var (
	// ErrCircuitOpen is returned when circuit breaker is open
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTooManyRequests is returned when the half-open trial slots are taken
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hr_circuit_breaker_state",
		Help: "Circuit breaker state per breaker: 0 closed, 1 half-open, 2 open",
	}, []string{"breaker"})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_circuit_breaker_transitions_total",
		Help: "Circuit breaker state changes by target state",
	}, []string{"breaker", "to"})

	breakerRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_circuit_breaker_rejections_total",
		Help: "Calls refused without reaching the protected service",
	}, []string{"breaker"})
)

// CircuitBreaker guards calls to an unreliable dependency. After MaxFailures
// consecutive failures it rejects calls for ResetTimeout, then lets
// HalfOpenRequests trial calls decide whether to close again.
type CircuitBreaker struct {
	name     string
	settings config.BreakerConfig
	now      func() time.Time

	mutex       sync.Mutex
	state       CircuitState
	failures    int
	openedAt    time.Time
	halfOpenReq int
}

// NewCircuitBreaker creates a closed breaker. Zero settings fall back to
// 5 failures, a 30s reset timeout and one half-open trial.
func NewCircuitBreaker(name string, settings config.BreakerConfig) *CircuitBreaker {
	if settings.MaxFailures < 1 {
		settings.MaxFailures = 5
	}
	if settings.ResetTimeout <= 0 {
		settings.ResetTimeout = 30 * time.Second
	}
	if settings.HalfOpenRequests < 1 {
		settings.HalfOpenRequests = 1
	}

	breakerState.WithLabelValues(name).Set(stateValues[StateClosed])
	return &CircuitBreaker{
		name:     name,
		settings: settings,
		now:      time.Now,
		state:    StateClosed,
	}
}

// Call executes fn unless the breaker refuses it
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.admit(); err != nil {
		breakerRejections.WithLabelValues(cb.name).Inc()
		return err
	}

	err := fn()

	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

func (cb *CircuitBreaker) admit() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.settings.ResetTimeout {
			return ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.halfOpenReq >= cb.settings.HalfOpenRequests {
			return ErrTooManyRequests
		}
		cb.halfOpenReq++
	}
	return nil
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	switch {
	case cb.state == StateHalfOpen:
		cb.trip()
	case cb.state == StateClosed && cb.failures >= cb.settings.MaxFailures:
		cb.trip()
	}
}

// a single trial success closes a half-open breaker
func (cb *CircuitBreaker) onSuccess() {
	cb.failures = 0
	if cb.state == StateHalfOpen {
		cb.transition(StateClosed)
	}
}

func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.transition(StateOpen)
}

// transition must be called with the mutex held
func (cb *CircuitBreaker) transition(to CircuitState) {
	if cb.state == to {
		return
	}
	logrus.WithFields(logrus.Fields{
		"breaker":  cb.name,
		"from":     cb.state,
		"to":       to,
		"failures": cb.failures,
	}).Warn("Circuit breaker state changed")

	cb.state = to
	cb.halfOpenReq = 0
	breakerState.WithLabelValues(cb.name).Set(stateValues[to])
	breakerTransitions.WithLabelValues(cb.name, string(to)).Inc()
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Failures is the current run of consecutive failures
func (cb *CircuitBreaker) Failures() int {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.failures
}

// Reset closes the breaker and forgets recorded failures
func (cb *CircuitBreaker) Reset() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.failures = 0
	cb.transition(StateClosed)
}
