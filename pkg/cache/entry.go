package cache

import (
	"time"
)

// Entry is a cached popularity count for one universe.
type Entry struct {
	// Likes is the favorited count reported by the catalog API.
	Likes int64

	// CachedAt is when the count was stored.
	CachedAt time.Time
}

// IsExpired reports whether the entry is no longer valid at now for the given TTL.
// An entry is valid only while now - CachedAt < ttl.
func (e Entry) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CachedAt) >= ttl
}

// TTL returns the time remaining until the entry expires.
// Returns 0 if already expired.
func (e Entry) TTL(now time.Time, ttl time.Duration) time.Duration {
	remaining := ttl - now.Sub(e.CachedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
