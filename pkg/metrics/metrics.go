// Package metrics exposes the Prometheus registry used by the likes proxy.
// Collectors are defined in their own packages (cache, catalog, proxy) via
// promauto and land in the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the proxy.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - likes_cache_hits_total (Counter): Lookups answered from the cache
//   - likes_cache_misses_total (Counter): Lookups with no valid entry
//   - likes_cache_expirations_total (Counter): Expired entries purged on access
//   - likes_cache_evictions_total (Counter): Entries evicted at capacity
//   - likes_cache_entries (Gauge): Entries currently held
//
// Catalog Metrics (pkg/catalog):
//   - likes_upstream_requests_total{status} (Counter): Catalog requests by HTTP status
//   - likes_upstream_request_duration_seconds (Histogram): Catalog request latency
//   - likes_upstream_errors_total{kind} (Counter): Catalog failures by kind
//
// Request Metrics (pkg/proxy):
//   - likes_requests_total{code} (Counter): HTTP responses by status code
//   - likes_request_duration_seconds (Histogram): HTTP request latency
//   - likes_lookups_total{source} (Counter): Successful lookups by source (cache, upstream)
//   - likes_lookup_errors_total{kind} (Counter): Failed lookups by error kind
//   - likes_coalesced_fetches_total (Counter): Lookups that shared an in-flight fetch
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(likes_lookups_total{source="cache"}[5m])) / sum(rate(likes_lookups_total[5m]))
//
//   # Catalog Error Rate
//   sum by (kind) (rate(likes_upstream_errors_total[5m]))
//
//   # P95 Catalog Latency
//   histogram_quantile(0.95, rate(likes_upstream_request_duration_seconds_bucket[5m]))
