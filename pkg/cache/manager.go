package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultTTL is how long a fetched count stays valid.
	DefaultTTL = 300 * time.Second

	// DefaultCapacity is the maximum number of universes held at once.
	DefaultCapacity = 128
)

// ErrInvalidConfig indicates a non-positive TTL or capacity.
var ErrInvalidConfig = errors.New("invalid cache config")

// Config holds the cache configuration. Both values are fixed for the
// lifetime of a Manager.
type Config struct {
	// TTL is the time an entry stays valid after insertion.
	TTL time.Duration

	// Capacity is the maximum number of distinct universes held.
	Capacity int
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		TTL:      DefaultTTL,
		Capacity: DefaultCapacity,
	}
}

// Manager is a bounded, time-expiring universe -> likes store.
// It is safe for concurrent use.
type Manager struct {
	// mu makes the expiry check and purge in Get atomic with respect to Put,
	// so a lazy purge never drops an entry that was just refreshed.
	mu    sync.Mutex
	lru   *lru.Cache[Key, Entry]
	ttl   time.Duration
	clock Clock
}

// NewManager creates a cache manager. A nil clock uses SystemClock.
func NewManager(cfg Config, clock Clock) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("%w: ttl must be > 0 (got %s)", ErrInvalidConfig, cfg.TTL)
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be > 0 (got %d)", ErrInvalidConfig, cfg.Capacity)
	}
	if clock == nil {
		clock = SystemClock{}
	}

	store, err := lru.New[Key, Entry](cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}

	return &Manager{
		lru:   store,
		ttl:   cfg.TTL,
		clock: clock,
	}, nil
}

// Get returns the cached likes for universeID if an unexpired entry exists.
// Expired entries are purged on access.
func (m *Manager) Get(universeID int64) (int64, bool) {
	key := Key(universeID)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lru.Get(key)
	if !ok {
		CacheMisses.Inc()
		return 0, false
	}

	if entry.IsExpired(m.clock.Now(), m.ttl) {
		m.lru.Remove(key)
		CacheExpirations.Inc()
		CacheMisses.Inc()
		CacheEntries.Set(float64(m.lru.Len()))
		return 0, false
	}

	CacheHits.Inc()
	return entry.Likes, true
}

// Put stores likes for universeID and resets its insertion time.
// When the cache is full and universeID is new, the least recently used
// entry is evicted first.
func (m *Manager) Put(universeID int64, likes int64) {
	entry := Entry{
		Likes:    likes,
		CachedAt: m.clock.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if evicted := m.lru.Add(Key(universeID), entry); evicted {
		CacheEvictions.Inc()
	}
	CacheEntries.Set(float64(m.lru.Len()))
}

// Len returns the number of entries physically held, including expired
// entries not yet purged. It never exceeds the configured capacity.
func (m *Manager) Len() int {
	return m.lru.Len()
}

// Purge removes every entry.
func (m *Manager) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Purge()
	CacheEntries.Set(0)
}

// TTL returns the configured time-to-live.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
