package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks lookups answered from the cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "likes_cache_hits_total",
			Help: "Total number of lookup cache hits",
		},
	)

	// CacheMisses tracks lookups that found no valid entry
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "likes_cache_misses_total",
			Help: "Total number of lookup cache misses",
		},
	)

	// CacheExpirations tracks entries purged on access after their TTL elapsed
	CacheExpirations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "likes_cache_expirations_total",
			Help: "Total number of expired entries purged on access",
		},
	)

	// CacheEvictions tracks entries dropped to stay within capacity
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "likes_cache_evictions_total",
			Help: "Total number of entries evicted because the cache was full",
		},
	)

	// CacheEntries tracks the number of entries currently held
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "likes_cache_entries",
			Help: "Current number of entries held by the lookup cache",
		},
	)
)
