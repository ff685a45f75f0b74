package cache

import (
	"context"
	"time"

	"github.com/coastwatch/buoyant/internal/ratelimit"
)

// refreshThreshold is the fraction of the TTL below which an entry is still
// considered warm enough to skip during a bulk refresh.
const refreshThreshold = 0.9

// RefreshAll re-fetches the payload for every key whose cached entry is
// older than 90% of the TTL, staggering requests through the rate limiter.
// One key's failure never aborts the batch; the outcome list reports every
// key that was attempted. Keys skipped as still-warm are omitted from the
// outcomes.
func (c *Cache) RefreshAll(ctx context.Context, limiter *ratelimit.Limiter, source string, keys []string, staggerDelay time.Duration, fetch func(ctx context.Context, key string) ([]byte, error)) []ratelimit.Outcome {
	due := make([]string, 0, len(keys))
	threshold := time.Duration(float64(c.ttl) * refreshThreshold)
	for _, key := range keys {
		if age, ok := c.Age(ctx, key); ok && age < threshold {
			continue
		}
		due = append(due, key)
	}

	c.logger.Info("bulk cache refresh", "source", source, "total", len(keys), "due", len(due))

	return limiter.Stagger(ctx, source, due, staggerDelay, func(ctx context.Context, key string) error {
		payload, err := fetch(ctx, key)
		if err != nil {
			c.logger.Warn("refresh fetch failed", "key", key, "error", err)
			return err
		}
		c.Set(ctx, key, payload)
		return nil
	})
}
