// Package observability exposes Prometheus counters and a duration
// histogram for calls made through the HTTP surface into the core; the
// one-shot CLI commands record no metrics.
//
// Grounded on internal/observability/metrics.go (teacher): same
// NewMetrics(reg)/Handler(reg)/Observe(...) shape, relabeled from WAF
// request/block/rule-match counters to normalization call-outcome counters.
package observability

import (
	"net/http"

	"github.com/klyr/pathnorm/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	callsTotal    *prometheus.CounterVec
	resultsTotal  *prometheus.CounterVec
	ratelimitHits *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathnorm_calls_total", Help: "Total core calls"},
			[]string{"operation", "dialect"},
		),
		resultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathnorm_results_total", Help: "Total core calls by result code"},
			[]string{"operation", "dialect", "result"},
		),
		ratelimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathnorm_ratelimit_hits_total", Help: "Total rate limit hits"},
			[]string{"client_ip"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathnorm_call_duration_seconds",
				Help:    "Core call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "dialect"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.callsTotal,
		m.resultsTotal,
		m.ratelimitHits,
		m.callDuration,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Observe records the outcome of one core call described by event.
func (m *Metrics) Observe(event logging.Event, durationSeconds float64) {
	if m == nil {
		return
	}

	m.callsTotal.WithLabelValues(event.Operation, event.Dialect).Inc()
	m.resultsTotal.WithLabelValues(event.Operation, event.Dialect, event.ResultName).Inc()
	m.callDuration.WithLabelValues(event.Operation, event.Dialect).Observe(durationSeconds)
}

// ObserveRateLimitHit records a rejected request for clientIP.
func (m *Metrics) ObserveRateLimitHit(clientIP string) {
	if m == nil {
		return
	}
	m.ratelimitHits.WithLabelValues(clientIP).Inc()
}
