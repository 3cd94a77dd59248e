// Package cache provides the in-memory lookup cache that sits in front of the
// catalog API.
//
// The cache manager implements the following behavior:
//
// - Entries are valid only while now - insertion time < TTL
// - Expired entries are logically absent and purged lazily on access
// - The number of entries never exceeds the configured capacity (LRU eviction)
// - Time is read through an injected Clock, so expiry is testable without sleeping
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	manager, err := cache.NewManager(cache.DefaultConfig(), cache.SystemClock{})
//	if err != nil {
//		return err
//	}
//
//	if likes, ok := manager.Get(1818); ok {
//		// Cache hit
//	}
//
//	// Cache miss - fetch from the catalog, then store
//	manager.Put(1818, 4200)
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - likes_cache_hits_total - Cache hits
//   - likes_cache_misses_total - Cache misses (absent or expired)
//   - likes_cache_expirations_total - Expired entries purged on access
//   - likes_cache_evictions_total - Entries evicted at capacity
//   - likes_cache_entries - Entries currently held
package cache
