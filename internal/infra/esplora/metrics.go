package esplora

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks fetches served from the durable cache
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_cache_hits_total",
			Help: "Total number of fetches served from cache",
		},
		[]string{"policy"},
	)

	// cacheMisses tracks fetches that went to the network
	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_cache_misses_total",
			Help: "Total number of fetches that missed the cache",
		},
		[]string{"policy"},
	)

	// upstreamCalls tracks HTTP requests issued to the explorer
	upstreamCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainlens_upstream_calls_total",
			Help: "Total number of HTTP requests issued upstream",
		},
	)

	// upstreamRetries tracks retry attempts after transient failures
	upstreamRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainlens_upstream_retries_total",
			Help: "Total number of retried upstream requests",
		},
	)

	// upstreamErrors tracks terminal fetch failures by kind
	upstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_upstream_errors_total",
			Help: "Total number of terminal upstream failures",
		},
		[]string{"kind"},
	)

	// upstreamLatency tracks upstream request latency
	upstreamLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainlens_upstream_latency_seconds",
			Help:    "Upstream request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
