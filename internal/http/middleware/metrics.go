// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic:
//
//   - http_requests_total{method,path,status}
//   - http_request_duration_seconds{method,path}
//   - http_requests_inflight
//   - http_response_size_bytes{method,path}
//
// "path" is the registered Gin route (e.g. /api/v1/food-logs/:date), so dates
// and ids never become label values. Requests that match no route share the
// path label "unmatched".
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const unmatchedPath = "unmatched"

// HTTPMetrics holds the HTTP collectors.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
	size     *prometheus.HistogramVec
}

// NewHTTPMetrics creates the collectors and registers them with reg when it
// is non-nil.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		}),
		size: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8), // 256B..4MiB
		}, []string{"method", "path"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency, m.inflight, m.size)
	}
	return m
}

// Handler instruments every request passing through it.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.inflight.Inc()
		defer m.inflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		method := c.Request.Method

		m.requests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if n := c.Writer.Size(); n >= 0 {
			m.size.WithLabelValues(method, path).Observe(float64(n))
		}
	}
}
