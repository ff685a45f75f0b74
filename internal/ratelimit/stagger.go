package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Outcome is the per-item result of a staggered drain.
type Outcome struct {
	Key string
	Err error
}

// Stagger drains keys against one source with a fixed inter-request delay
// plus a little jitter, so bulk refreshes don't hammer an upstream. One
// item's failure never stops the rest. Cancellation is cooperative: the
// context is checked between items, never mid-fetch.
func (l *Limiter) Stagger(ctx context.Context, source string, keys []string, delay time.Duration, fn func(ctx context.Context, key string) error) []Outcome {
	outcomes := make([]Outcome, 0, len(keys))

	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			// Remaining items are reported as cancelled rather than
			// silently dropped.
			for _, rest := range keys[i:] {
				outcomes = append(outcomes, Outcome{Key: rest, Err: err})
			}
			return outcomes
		}

		if err := l.Acquire(ctx, source); err != nil {
			outcomes = append(outcomes, Outcome{Key: key, Err: err})
			continue
		}

		err := fn(ctx, key)
		if err != nil {
			l.RecordFailure(source)
		} else {
			l.RecordSuccess(source)
		}
		outcomes = append(outcomes, Outcome{Key: key, Err: err})

		if i < len(keys)-1 && delay > 0 {
			jitter := time.Duration(rand.Int63n(int64(delay)/5 + 1))
			select {
			case <-ctx.Done():
			case <-l.clock.After(delay + jitter):
			}
		}
	}

	return outcomes
}
