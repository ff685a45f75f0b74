// Package cache is the short-lived observation cache: TTL'd entries over a
// pluggable store, kept warm by a staggered bulk refresh rather than
// eviction.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Entry is a cached payload with its insertion time.
type Entry struct {
	Payload    []byte
	InsertedAt time.Time
}

// Store is the backing key-value store. Every operation takes a context so
// asynchronous backings fit behind the same synchronous-looking interface as
// the in-memory default; callers never sniff for capability.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	Keys(ctx context.Context) ([]string, error) // diagnostics only
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

// Cache wraps a Store with TTL semantics. Expiry is lazy: a stale entry is
// simply not returned, never deleted — the periodic bulk refresh is what
// keeps entries warm.
type Cache struct {
	store    Store
	ttl      time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	onLookup func(hit bool)
}

// SetLookupHook installs a callback invoked on every Get with the lookup
// outcome. Used to feed metrics without coupling the cache to them.
func (c *Cache) SetLookupHook(fn func(hit bool)) { c.onLookup = fn }

// New builds a cache over store. clock and logger may be nil.
func New(store Store, ttl time.Duration, clock clockwork.Clock, logger *slog.Logger) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, ttl: ttl, clock: clock, logger: logger}
}

// Get returns the cached payload for key. Absent and stale are deliberately
// indistinguishable: both mean "go fetch fresh data".
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, hit := c.lookup(ctx, key)
	if c.onLookup != nil {
		c.onLookup(hit)
	}
	return payload, hit
}

func (c *Cache) lookup(ctx context.Context, key string) ([]byte, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(e.InsertedAt) > c.ttl {
		return nil, false
	}
	return e.Payload, true
}

// Set stores payload under key, stamped with the current time.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	err := c.store.Set(ctx, key, Entry{Payload: payload, InsertedAt: c.clock.Now()})
	if err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Age returns how old the entry under key is, and whether one exists at all
// (stale included — Age is a refresh-planning primitive, not a read).
func (c *Cache) Age(ctx context.Context, key string) (time.Duration, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return 0, false
	}
	return c.clock.Now().Sub(e.InsertedAt), true
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }
