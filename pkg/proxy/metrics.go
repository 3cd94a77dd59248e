package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for proxy requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likes_requests_total",
		Help: "Total HTTP requests served by status code",
	}, []string{"code"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "likes_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likes_lookups_total",
		Help: "Total successful lookups by source",
	}, []string{"source"})

	lookupErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likes_lookup_errors_total",
		Help: "Total failed lookups by error kind",
	}, []string{"kind"})

	coalescedFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "likes_coalesced_fetches_total",
		Help: "Total lookups that shared an in-flight catalog call",
	})
)
