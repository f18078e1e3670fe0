package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation outcomes used as label values.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeOverflow = "overflow"
)

// Candidate outcomes used as label values.
const (
	CandidateAccepted  = "accepted"
	CandidateExhausted = "exhausted"
	CandidateRejected  = "rejected"
)

// Metrics holds the collectors of a generator process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	candidates  *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
	rows        *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exprgen_candidates_total",
				Help: "Candidate expressions produced, by target set and outcome.",
			},
			[]string{"set", "outcome"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exprgen_evaluations_total",
				Help: "Expression evaluations, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exprgen_evaluation_duration_seconds",
				Help:    "Wall-clock time spent evaluating an expression.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
		),
		rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "exprgen_dataset_rows",
				Help: "Rows accepted into the last built dataset, by set.",
			},
			[]string{"set"},
		),
	}
	m.registry.MustRegister(m.candidates, m.evaluations, m.duration, m.rows)
	return m
}

// Registry exposes the underlying registry for HTTP handlers and exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveCandidate counts a candidate for set with the given outcome.
func (m *Metrics) ObserveCandidate(set, outcome string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(set, outcome).Inc()
}

// ObserveEvaluation counts an evaluation and records its duration.
func (m *Metrics) ObserveEvaluation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// SetRows records the size of a finished set.
func (m *Metrics) SetRows(set string, n int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(set).Set(float64(n))
}

// WriteTextfile writes the current metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
