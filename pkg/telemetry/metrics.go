package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig toggles metric collection.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED" envDefault:"true"`
	Namespace string `yaml:"namespace" env:"NAMESPACE" envDefault:"formstate"`
}

// Submission results reported to ObserveSubmission.
const (
	ResultSubmitted = "submitted"
	ResultInvalid   = "invalid"
	ResultFailed    = "failed"
)

// Metrics collects form activity on a private registry. A disabled instance
// accepts every call and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	submissions      *prometheus.CounterVec
	submitDuration   prometheus.Histogram
	validationErrors *prometheus.CounterVec
	edits            *prometheus.CounterVec
	resets           prometheus.Counter
	activeSessions   prometheus.Gauge
}

// NewMetrics registers the collectors described by cfg.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{}, nil
	}
	ns := cfg.Namespace

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "submissions_total",
			Help:      "Submit attempts by result",
		}, []string{"result"}),
		submitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "submit_duration_seconds",
			Help:      "Time spent handing records to the submission collaborator",
			Buckets:   prometheus.DefBuckets,
		}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "validation_errors_total",
			Help:      "Failed rules by field",
		}, []string{"field"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "edits_total",
			Help:      "Edit events by operation",
		}, []string{"operation"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "resets_total",
			Help:      "Explicit resets and cancellations",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "active_sessions",
			Help:      "Form sessions currently held in memory",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.submissions, m.submitDuration, m.validationErrors, m.edits, m.resets, m.activeSessions,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Enabled reports whether collectors are registered.
func (m *Metrics) Enabled() bool {
	return m != nil && m.registry != nil
}

// ObserveSubmission counts a submit attempt and, for handed-off records, how
// long the collaborator took.
func (m *Metrics) ObserveSubmission(result string, elapsed time.Duration) {
	if !m.Enabled() {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
	if result != ResultInvalid {
		m.submitDuration.Observe(elapsed.Seconds())
	}
}

// ObserveValidationError counts a failing rule.
func (m *Metrics) ObserveValidationError(field string) {
	if !m.Enabled() {
		return
	}
	m.validationErrors.WithLabelValues(field).Inc()
}

// ObserveEdit counts an edit event such as "set_field" or "toggle".
func (m *Metrics) ObserveEdit(operation string) {
	if !m.Enabled() {
		return
	}
	m.edits.WithLabelValues(operation).Inc()
}

// ObserveReset counts a reset or cancel.
func (m *Metrics) ObserveReset() {
	if !m.Enabled() {
		return
	}
	m.resets.Inc()
}

// SetActiveSessions reports the session store size.
func (m *Metrics) SetActiveSessions(n int) {
	if !m.Enabled() {
		return
	}
	m.activeSessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if !m.Enabled() {
		return prometheus.NewRegistry()
	}
	return m.registry
}
