// Package metrics exposes a running anneal search over Prometheus,
// translating OperatorStats and progress snapshots into gauges and
// counters. It is fed entirely through anneal's optional progress hook
// and the Solution returned at the end of a run; it never reaches into
// the engine's internals.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coolforge/anneal"
)

// Registry holds the Prometheus metrics for one CLI process. Multiple
// concurrent runs share it, distinguished by the runID label.
type Registry struct {
	Temperature      *prometheus.GaugeVec
	CurrentFitness   *prometheus.GaugeVec
	BestFitness      *prometheus.GaugeVec
	SinceImprovement *prometheus.GaugeVec
	Reheats          *prometheus.GaugeVec
	Iterations       *prometheus.CounterVec

	OperatorAttempts     *prometheus.GaugeVec
	OperatorAccepted     *prometheus.GaugeVec
	OperatorImprovements *prometheus.GaugeVec

	RunsTotal      *prometheus.CounterVec
	RunsInProgress prometheus.Gauge
}

// NewRegistry builds and registers every metric with reg. Passing a
// fresh prometheus.NewRegistry() per process (rather than the global
// DefaultRegisterer) keeps repeated test runs from panicking on
// duplicate registration.
func NewRegistry(reg *prometheus.Registry) *Registry {
	r := &Registry{
		Temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_temperature",
			Help: "Current annealing temperature.",
		}, []string{"run_id"}),
		CurrentFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_current_fitness",
			Help: "Fitness of the currently accepted state.",
		}, []string{"run_id"}),
		BestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_best_fitness",
			Help: "Fitness of the best state observed so far.",
		}, []string{"run_id"}),
		SinceImprovement: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_since_improvement",
			Help: "Iterations since the last strict improvement.",
		}, []string{"run_id"}),
		Reheats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_reheats",
			Help: "Number of reheats performed so far.",
		}, []string{"run_id"}),
		Iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anneal_iterations_total",
			Help: "Iterations executed.",
		}, []string{"run_id"}),
		OperatorAttempts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_operator_attempts",
			Help: "Attempts per move generator.",
		}, []string{"run_id", "generator"}),
		OperatorAccepted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_operator_accepted",
			Help: "Accepted candidates per move generator.",
		}, []string{"run_id", "generator"}),
		OperatorImprovements: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anneal_operator_improvements",
			Help: "Improving candidates per move generator.",
		}, []string{"run_id", "generator"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anneal_runs_total",
			Help: "Runs completed, by final status.",
		}, []string{"status"}),
		RunsInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "anneal_runs_in_progress",
			Help: "Runs currently executing.",
		}),
	}

	reg.MustRegister(
		r.Temperature, r.CurrentFitness, r.BestFitness, r.SinceImprovement,
		r.Reheats, r.Iterations, r.OperatorAttempts, r.OperatorAccepted,
		r.OperatorImprovements, r.RunsTotal, r.RunsInProgress,
	)
	return r
}

// Observe records p against r. Its signature matches
// anneal.Config.ProgressHook, so r.Observe can be assigned to it directly.
func (r *Registry) Observe(p anneal.Progress) {
	r.Temperature.WithLabelValues(p.RunID).Set(p.Temperature)
	r.CurrentFitness.WithLabelValues(p.RunID).Set(p.CurrentFitness)
	r.BestFitness.WithLabelValues(p.RunID).Set(p.BestFitness)
	r.SinceImprovement.WithLabelValues(p.RunID).Set(float64(p.SinceImprovement))
	r.Reheats.WithLabelValues(p.RunID).Set(float64(p.Reheats))
}

// RecordResult updates the per-generator gauges and the run-status
// counter from a finished Solution.
func (r *Registry) RecordResult(sol anneal.Solution) {
	for _, st := range sol.OperatorStats {
		r.OperatorAttempts.WithLabelValues(sol.RunID, st.Name).Set(float64(st.Attempts))
		r.OperatorAccepted.WithLabelValues(sol.RunID, st.Name).Set(float64(st.Accepted))
		r.OperatorImprovements.WithLabelValues(sol.RunID, st.Name).Set(float64(st.Improvements))
	}
	r.Iterations.WithLabelValues(sol.RunID).Add(float64(sol.Iterations))
	r.RunsTotal.WithLabelValues(string(sol.Status)).Inc()
}

// Handler returns an http.Handler serving reg's metrics in the
// Prometheus text exposition format, for mounting at /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
