package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk
// service.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentDuration prometheus.Histogram

	// Upstream client metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: service, outcome={success,error,fallback}
	UpstreamDuration *prometheus.HistogramVec // labels: service

	// Alert subsystem metrics.
	PollCycles    prometheus.Counter
	PollErrors    prometheus.Counter
	AlertsCreated *prometheus.CounterVec // labels: origin={auto,manual}, severity
	AlertsStored  prometheus.Gauge
	PollerRunning prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.PollCycles,
		m.PollErrors,
		m.AlertsCreated,
		m.AlertsStored,
		m.PollerRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "epidemic_risk",
			Name:      "assessments_total",
			Help:      "Total risk assessments computed.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "epidemic_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete locate-fetch-score-advise chain.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "epidemic_risk",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by service and outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "epidemic_risk",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service"}),
		PollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "epidemic_risk",
			Name:      "poll_cycles_total",
			Help:      "Total case-feed polling cycles started.",
		}),
		PollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "epidemic_risk",
			Name:      "poll_errors_total",
			Help:      "Polling cycles that failed to fetch the case feed.",
		}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "epidemic_risk",
			Name:      "alerts_created_total",
			Help:      "Alerts accepted into the store by origin and severity.",
		}, []string{"origin", "severity"}),
		AlertsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "epidemic_risk",
			Name:      "alerts_stored",
			Help:      "Current number of alerts in the store.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "epidemic_risk",
			Name:      "poller_running",
			Help:      "1 when the case-feed poller is active, 0 when shut down.",
		}),
	}
}
