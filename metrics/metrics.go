// Package metrics exposes Prometheus instrumentation for the departures
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the pipeline's instruments on a private registry.
type Collector struct {
	reg *prometheus.Registry

	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	FetchErrors  *prometheus.CounterVec // feed label
	QueriesTotal prometheus.Counter

	QueryDuration prometheus.Histogram
}

// NewCollector creates and registers all instruments.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_feed_cache_hits_total",
			Help: "Live-feed cache reads answered without network access.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_feed_cache_misses_total",
			Help: "Live-feed cache reads that required a fetch.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_feed_fetch_errors_total",
			Help: "Live-feed fetches that failed or returned a bad status.",
		}, []string{"feed"}),
		QueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_queries_total",
			Help: "Departure queries served.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "departures_query_duration_seconds",
			Help:    "End-to-end departure query duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.CacheHits,
		c.CacheMisses,
		c.FetchErrors,
		c.QueriesTotal,
		c.QueryDuration,
		collectors.NewGoCollector(),
	)
	return c
}

// Handler returns the HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
