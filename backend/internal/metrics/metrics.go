// Package metrics exposes Prometheus metrics for the match service.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Match graph metrics
	NetworkBuilds        prometheus.Counter
	NetworkBuildDuration prometheus.Histogram
	NetworkNodes         prometheus.Gauge
	NetworkEdges         prometheus.Gauge
	MatchesRecorded      prometheus.Counter

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		NetworkBuilds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "network_builds_total",
				Help:      "Total number of match graphs built from the store",
			},
		),
		NetworkBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "network_build_duration_seconds",
				Help:      "Time spent loading and building a match graph",
				Buckets:   prometheus.DefBuckets,
			},
		),
		NetworkNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "network_nodes",
				Help:      "Users in the most recently built or updated match graph",
			},
		),
		NetworkEdges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "network_edges",
				Help:      "Matches in the most recently built or updated match graph",
			},
		),
		MatchesRecorded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matches_recorded_total",
				Help:      "Total number of matches recorded",
			},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total number of store operations",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.NetworkBuilds,
		c.NetworkBuildDuration,
		c.NetworkNodes,
		c.NetworkEdges,
		c.MatchesRecorded,
		c.StoreOperations,
		c.StoreDuration,
	)

	return c
}

// Registry returns the registry the collector's metrics live in
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveRequest records one HTTP request
func (c *Collector) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBuild records a graph built from the store and its size
func (c *Collector) ObserveBuild(nodes, edges int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.NetworkBuilds.Inc()
	c.NetworkBuildDuration.Observe(elapsed.Seconds())
	c.SetNetworkSize(nodes, edges)
}

// SetNetworkSize updates the graph size gauges
func (c *Collector) SetNetworkSize(nodes, edges int) {
	if c == nil {
		return
	}
	c.NetworkNodes.Set(float64(nodes))
	c.NetworkEdges.Set(float64(edges))
}

// IncMatchesRecorded counts newly recorded matches
func (c *Collector) IncMatchesRecorded(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.MatchesRecorded.Add(float64(n))
}

// ObserveStore records a store operation started at start
func (c *Collector) ObserveStore(operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.StoreOperations.WithLabelValues(operation, status).Inc()
	c.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
