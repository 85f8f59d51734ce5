// Package metrics exposes clustering and HTTP metrics through Prometheus.
//
// A Collector owns its registry, so several collectors (one per test, say)
// never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/capkmeans/kmeans"
)

// Namespace prefixes every metric name.
const Namespace = "capkmeans"

// StateError labels runs that returned an error.
const StateError = "error"

// Collector holds all Prometheus metrics of the application. It implements
// kmeans.Observer and is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	Iterations    prometheus.Histogram
	SolveDuration prometheus.Histogram
	PointsMoved   prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

var _ kmeans.Observer = (*Collector)(nil)

// NewCollector creates and registers all metrics on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by terminal state.",
		},
		[]string{"state"},
	)
	iterations := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "iterations",
			Help:      "Center updates per finished run.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		},
	)
	solve := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Duration of one assignment pass (build, solve, extract).",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
	)
	moved := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "points_moved",
			Help:      "Points whose label changed in one assignment pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(runs, iterations, solve, moved, httpRequests, httpDuration)

	return &Collector{
		registry:      registry,
		Runs:          runs,
		Iterations:    iterations,
		SolveDuration: solve,
		PointsMoved:   moved,
		HTTPRequests:  httpRequests,
		HTTPDuration:  httpDuration,
	}
}

// OnIteration records one assignment pass.
func (c *Collector) OnIteration(s kmeans.IterationStats) {
	c.SolveDuration.Observe(s.SolveDuration.Seconds())
	c.PointsMoved.Observe(float64(s.Moved))
}

// OnFinish records a completed run.
func (c *Collector) OnFinish(res *kmeans.Result) {
	c.Runs.WithLabelValues(res.State.String()).Inc()
	c.Iterations.Observe(float64(res.Iterations))
}

// RunFailed counts a run that ended with an error.
func (c *Collector) RunFailed() {
	c.Runs.WithLabelValues(StateError).Inc()
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Registry returns the registry backing c.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry to path for the node exporter textfile
// collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
