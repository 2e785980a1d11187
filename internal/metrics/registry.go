// Package metrics collects the limbcheck run metrics: a Prometheus registry
// of strategy timings and mismatches, exportable as a node_exporter textfile,
// and runtime memory snapshots for the bench command.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "limbcheck"

// Recorder holds the run metrics on a private registry.
type Recorder struct {
	registry   *prometheus.Registry
	duration   *prometheus.HistogramVec
	cases      *prometheus.CounterVec
	mismatches *prometheus.CounterVec
	nsPerLimb  *prometheus.GaugeVec
	thresholds *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall time of one strategy over the whole workload.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"operation", "strategy"}),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_total",
			Help:      "Workload cases checked.",
		}, []string{"operation"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mismatches_total",
			Help:      "Cases where a strategy disagreed with the reference.",
		}, []string{"operation", "strategy"}),
		nsPerLimb: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ns_per_limb",
			Help:      "Measured cost of a strategy at a dividend length.",
		}, []string{"strategy", "length"}),
		thresholds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mod_threshold_limbs",
			Help:      "Resolved mod_limb crossover thresholds.",
		}, []string{"name"}),
	}
	r.registry.MustRegister(r.duration, r.cases, r.mismatches, r.nsPerLimb, r.thresholds)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveStrategy records one strategy run.
func (r *Recorder) ObserveStrategy(operation, strategy string, d time.Duration) {
	r.duration.WithLabelValues(operation, strategy).Observe(d.Seconds())
}

// AddCases counts checked cases.
func (r *Recorder) AddCases(operation string, n int) {
	r.cases.WithLabelValues(operation).Add(float64(n))
}

// AddMismatches counts disagreeing cases.
func (r *Recorder) AddMismatches(operation, strategy string, n int) {
	r.mismatches.WithLabelValues(operation, strategy).Add(float64(n))
}

// SetNsPerLimb records a calibration or bench measurement.
func (r *Recorder) SetNsPerLimb(strategy, length string, ns float64) {
	r.nsPerLimb.WithLabelValues(strategy, length).Set(ns)
}

// SetThreshold records a resolved threshold.
func (r *Recorder) SetThreshold(name string, limbs int) {
	r.thresholds.WithLabelValues(name).Set(float64(limbs))
}

// WriteTextfile writes the registry in the Prometheus text format,
// atomically replacing path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
