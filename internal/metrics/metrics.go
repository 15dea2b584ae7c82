// Package metrics exposes the service's Prometheus instruments.
// Everything is registered on a private registry so tests can build as many
// collectors as they like without "duplicate metrics collector" panics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trip_planner"

// Collector owns the registry and every instrument the API records.
type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec   // method, route, status
	HTTPDuration *prometheus.HistogramVec // method, route

	OutOfRange prometheus.Counter
}

// NewCollector builds a Collector with Go runtime and process collectors
// already registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"method", "route"}),
		OutOfRange: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_out_of_range_total",
			Help:      "Activities left out of a day-grouped itinerary because they fall outside the trip's dates.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.OutOfRange,
	)
	return c
}

// ObserveRequest records one served request.
// route should be the matched route pattern, not the raw path, to keep
// label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ActivitiesOutOfRange adds n to the out-of-range activity counter.
func (c *Collector) ActivitiesOutOfRange(n int) {
	if n > 0 {
		c.OutOfRange.Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}
