// Prometheus metrics for the calcd engine.

package engine

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the per-handler Prometheus collectors. Each Handler owns
// its own registry so multiple servers in one process never collide.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &metrics{
		registry: reg,
		requestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "calcd_http_requests_total",
			Help: "Total HTTP requests served, by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calcd_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// routeLabel maps a request path to a low-cardinality route label.
// Arithmetic routes collapse to their operation segment so arbitrary
// operands never grow the label set.
func routeLabel(path string) string {
	switch path {
	case "/":
		return "/"
	case "/healthz", "/metrics":
		return path
	}
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	switch seg {
	case "add", "subtract", "multiply":
		return "/" + seg
	}
	return "other"
}
