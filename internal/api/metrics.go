package api

import (
	"net/http"
	"time"

	"retail-bi/internal/analytics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records view computation latency on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "retail_bi",
			Name:      "view_duration_seconds",
			Help:      "Time spent joining, filtering and aggregating one page view.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"page"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retail_bi",
			Name:      "view_failures_total",
			Help:      "Page views that could not be computed.",
		}, []string{"page"}),
	}
	m.registry.MustRegister(
		m.duration,
		m.failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observe(page analytics.Page, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.WithLabelValues(string(page)).Inc()
		return
	}
	m.duration.WithLabelValues(string(page)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
