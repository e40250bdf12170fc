// Package metrics exposes evaluation counters and score distributions in
// Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	// OutcomeSuccess labels an evaluation that returned a result.
	OutcomeSuccess = "success"
	// OutcomeError labels an evaluation rejected with an error.
	OutcomeError = "error"
)

// Operation labels.
const (
	// OperationDecay labels decay projections.
	OperationDecay = "decay"
	// OperationDisplacement labels displacement and methane calculations.
	OperationDisplacement = "displacement"
	// OperationEcoScore labels direct eco-score evaluations.
	OperationEcoScore = "ecoscore"
	// OperationScenario labels named scenario runs.
	OperationScenario = "scenario"
)

// Recorder owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	totalScore  prometheus.Histogram
}

// NewRecorder registers the ecotray collectors plus the Go runtime and
// process collectors on a new registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecotray",
			Name:      "evaluations_total",
			Help:      "Evaluations served, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		totalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ecotray",
			Name:      "eco_total_score",
			Help:      "Distribution of composite eco-scores.",
			Buckets:   []float64{0, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		}),
	}
	r.registry.MustRegister(
		r.evaluations,
		r.totalScore,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe counts one evaluation of operation. A nil err is a success.
func (r *Recorder) Observe(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.evaluations.WithLabelValues(operation, outcome).Inc()
}

// ObserveScore records a composite eco-score.
func (r *Recorder) ObserveScore(total float64) {
	r.totalScore.Observe(total)
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
