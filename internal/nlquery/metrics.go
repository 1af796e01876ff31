package nlquery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the queries counter.
const (
	outcomeOK      = "ok"
	outcomeNoMatch = "no_match"
	outcomeError   = "error"
)

// noRule labels metrics for questions that matched nothing.
const noRule = "none"

// Metrics holds the processor's Prometheus collectors.
type Metrics struct {
	queries    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	suspicious *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickdocs_queries_total",
				Help: "Total number of processed questions by matched rule and outcome",
			},
			[]string{"rule", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quickdocs_query_duration_seconds",
				Help:    "Duration of question processing in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"rule"},
		),
		suspicious: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickdocs_suspicious_parameters_total",
				Help: "Captured parameters flagged by libinjection",
			},
			[]string{"rule"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.queries, m.duration, m.suspicious)
	}
	return m
}

func (m *Metrics) observe(rule, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(rule, outcome).Inc()
	m.duration.WithLabelValues(rule).Observe(elapsed.Seconds())
}

func (m *Metrics) flagSuspicious(rule string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.suspicious.WithLabelValues(rule).Add(float64(n))
}
