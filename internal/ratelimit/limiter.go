// Package ratelimit keeps outbound request rates to the upstream government
// feeds polite: per-source sliding windows plus exponential backoff after
// failures.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrUnknownSource is returned when a source name was never registered.
// Caller programming error, not retried.
var ErrUnknownSource = errors.New("unknown rate limit source")

// Known upstream sources.
const (
	SourceNDBC  = "ndbc"
	SourceNWS   = "nws"
	SourceCOOPS = "coops"
)

// Caps are the per-window request budgets for one source.
type Caps struct {
	PerSecond int
	PerMinute int
	PerHour   int
}

// defaultCaps reflect each feed's published guidance, erring low.
var defaultCaps = map[string]Caps{
	SourceNDBC:  {PerSecond: 2, PerMinute: 40, PerHour: 800},
	SourceNWS:   {PerSecond: 2, PerMinute: 60, PerHour: 1000},
	SourceCOOPS: {PerSecond: 2, PerMinute: 30, PerHour: 500},
}

const (
	pollInterval = 100 * time.Millisecond
	maxBackoff   = 60 * time.Second
)

type sourceState struct {
	caps         Caps
	requests     []time.Time // sliding window, pruned to the last hour
	failures     int
	backoffUntil time.Time
}

// Limiter enforces the per-source windows. A caller must Acquire a slot
// before each upstream request and record the outcome afterwards so backoff
// tracks consecutive failures.
type Limiter struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	sources   map[string]*sourceState
	logger    *slog.Logger
	onOutcome func(source string, success bool)
}

// SetOutcomeHook installs a callback invoked on every recorded outcome.
// Used to feed metrics without coupling the limiter to them.
func (l *Limiter) SetOutcomeHook(fn func(source string, success bool)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onOutcome = fn
}

// New builds a limiter with the default source table. clock and logger may
// be nil (real clock, default logger).
func New(clock clockwork.Clock, logger *slog.Logger) *Limiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Limiter{
		clock:   clock,
		sources: make(map[string]*sourceState, len(defaultCaps)),
		logger:  logger,
	}
	for name, caps := range defaultCaps {
		l.sources[name] = &sourceState{caps: caps}
	}
	return l
}

// Register adds or replaces a source with explicit caps.
func (l *Limiter) Register(source string, caps Caps) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[source] = &sourceState{caps: caps}
}

// Acquire blocks until the source has a free slot in every window and any
// active backoff has expired, then records the request timestamp. It polls
// at a fixed short interval rather than computing exact wakeups; the windows
// are coarse enough that this is simpler and equally polite.
func (l *Limiter) Acquire(ctx context.Context, source string) error {
	l.mu.Lock()
	if _, ok := l.sources[source]; !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	l.mu.Unlock()

	for {
		if l.tryAcquire(source) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(pollInterval):
		}
	}
}

func (l *Limiter) tryAcquire(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.sources[source]
	now := l.clock.Now()

	if now.Before(st.backoffUntil) {
		return false
	}

	st.prune(now)
	if !st.hasCapacity(now) {
		return false
	}

	st.requests = append(st.requests, now)
	return true
}

// RecordSuccess resets the source's failure count and backoff.
func (l *Limiter) RecordSuccess(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if st, ok := l.sources[source]; ok {
		st.failures = 0
		st.backoffUntil = time.Time{}
	}
	if l.onOutcome != nil {
		l.onOutcome(source, true)
	}
}

// RecordFailure bumps the failure count and extends backoff to
// min(2^failures, 60) seconds from now.
func (l *Limiter) RecordFailure(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.sources[source]
	if !ok {
		return
	}
	st.failures++
	delay := backoffDelay(st.failures)
	st.backoffUntil = l.clock.Now().Add(delay)
	l.logger.Warn("upstream failure recorded",
		"source", source,
		"consecutive_failures", st.failures,
		"backoff", delay,
	)
	if l.onOutcome != nil {
		l.onOutcome(source, false)
	}
}

// BackoffDelay exposes the computed backoff for a source, mostly for
// diagnostics and tests.
func (l *Limiter) BackoffDelay(source string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.sources[source]
	if !ok || st.failures == 0 {
		return 0
	}
	return backoffDelay(st.failures)
}

func backoffDelay(failures int) time.Duration {
	secs := math.Pow(2, float64(failures))
	d := time.Duration(secs) * time.Second
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}

func (s *sourceState) prune(now time.Time) {
	cutoff := now.Add(-time.Hour)
	i := 0
	for ; i < len(s.requests); i++ {
		if s.requests[i].After(cutoff) {
			break
		}
	}
	if i > 0 {
		s.requests = append(s.requests[:0], s.requests[i:]...)
	}
}

func (s *sourceState) hasCapacity(now time.Time) bool {
	if s.caps.PerHour > 0 && len(s.requests) >= s.caps.PerHour {
		return false
	}
	var lastSecond, lastMinute int
	secCutoff := now.Add(-time.Second)
	minCutoff := now.Add(-time.Minute)
	for i := len(s.requests) - 1; i >= 0; i-- {
		t := s.requests[i]
		if !t.After(minCutoff) {
			break
		}
		lastMinute++
		if t.After(secCutoff) {
			lastSecond++
		}
	}
	if s.caps.PerMinute > 0 && lastMinute >= s.caps.PerMinute {
		return false
	}
	if s.caps.PerSecond > 0 && lastSecond >= s.caps.PerSecond {
		return false
	}
	return true
}
