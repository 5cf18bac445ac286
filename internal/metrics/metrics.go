// Package metrics defines the small set of Prometheus collectors this
// engine exposes, and the Recorder interface the core packages accept
// optionally (nil by default, so the library has no mandatory side
// effects). Only cmd/beliefsg's optional diagnostic HTTP listener ever
// registers a real Recorder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the hook core packages call into. A nil Recorder interface
// value is always safe to pass to the package-level helpers below, which
// skip the call, so callers can do `metrics.BPIteration(rec)` without a
// nil check of their own.
type Recorder interface {
	BPIteration()
	BPConverged(iterations int)
	Determinization()
	UCTIteration()
	DriverStepAborted()
}

// PrometheusRecorder backs Recorder with real Prometheus collectors.
type PrometheusRecorder struct {
	bpIterations        prometheus.Counter
	bpConvergence       prometheus.Histogram
	determinizations    prometheus.Counter
	uctIterations       prometheus.Counter
	driverStepsAborted  prometheus.Counter
}

// NewPrometheusRecorder builds and registers a PrometheusRecorder against
// reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		bpIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beliefsg",
			Name:      "bp_iterations_total",
			Help:      "Outer loopy belief propagation iterations run.",
		}),
		bpConvergence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beliefsg",
			Name:      "bp_convergence_iterations",
			Help:      "Iterations taken for belief propagation to converge.",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		}),
		determinizations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beliefsg",
			Name:      "determinizations_total",
			Help:      "Determinized worlds sampled.",
		}),
		uctIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beliefsg",
			Name:      "uct_iterations_total",
			Help:      "UCT tree-search playouts run.",
		}),
		driverStepsAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beliefsg",
			Name:      "driver_steps_aborted_total",
			Help:      "Driver steps aborted for an illegal action or inconsistent successor.",
		}),
	}
	reg.MustRegister(r.bpIterations, r.bpConvergence, r.determinizations, r.uctIterations, r.driverStepsAborted)
	return r
}

func (r *PrometheusRecorder) BPIteration()     { r.bpIterations.Inc() }
func (r *PrometheusRecorder) BPConverged(n int) { r.bpConvergence.Observe(float64(n)) }
func (r *PrometheusRecorder) Determinization() { r.determinizations.Inc() }
func (r *PrometheusRecorder) UCTIteration()    { r.uctIterations.Inc() }
func (r *PrometheusRecorder) DriverStepAborted() { r.driverStepsAborted.Inc() }

// The following helpers let callers hold a possibly-nil Recorder without
// a type switch at every call site.

func BPIteration(r Recorder) {
	if r != nil {
		r.BPIteration()
	}
}

func BPConverged(r Recorder, iterations int) {
	if r != nil {
		r.BPConverged(iterations)
	}
}

func Determinization(r Recorder) {
	if r != nil {
		r.Determinization()
	}
}

func UCTIteration(r Recorder) {
	if r != nil {
		r.UCTIteration()
	}
}

func DriverStepAborted(r Recorder) {
	if r != nil {
		r.DriverStepAborted()
	}
}
