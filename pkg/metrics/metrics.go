// Package metrics exposes the engine's Prometheus instrumentation: scoring
// throughput and latency, batch sizes, and config refresh outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder wraps the engine's Prometheus collectors. A nil *Recorder is
// valid and records nothing, so instrumentation stays optional for
// library callers.
type Recorder struct {
	propsScored    *prometheus.CounterVec
	scoringSeconds *prometheus.HistogramVec
	batchSize      prometheus.Histogram
	batchFailures  prometheus.Counter
	configRefresh  *prometheus.CounterVec
}

// New creates a recorder registered on the default Prometheus registry
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a recorder registered on the given registry. Tests pass
// a fresh prometheus.NewRegistry to avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		propsScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propscore_props_scored_total",
				Help: "Props graded, by sport and resulting tier",
			},
			[]string{"sport", "tier"},
		),
		scoringSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propscore_scoring_duration_seconds",
				Help:    "Duration of a single prop grading",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"version"},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "propscore_batch_size",
				Help:    "Number of props per batch run",
				Buckets: []float64{1, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		batchFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "propscore_batch_item_failures_total",
				Help: "Batch items rejected before grading",
			},
		),
		configRefresh: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propscore_config_refresh_total",
				Help: "Config refresh attempts, by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// PropScored records one graded prop
func (r *Recorder) PropScored(sport, tier string, seconds float64, version string) {
	if r == nil {
		return
	}
	r.propsScored.WithLabelValues(sport, tier).Inc()
	r.scoringSeconds.WithLabelValues(version).Observe(seconds)
}

// BatchRun records the size of a batch and how many items were rejected
func (r *Recorder) BatchRun(size, failures int) {
	if r == nil {
		return
	}
	r.batchSize.Observe(float64(size))
	r.batchFailures.Add(float64(failures))
}

// ConfigRefresh records a refresh attempt outcome ("success", "failure",
// "unchanged")
func (r *Recorder) ConfigRefresh(outcome string) {
	if r == nil {
		return
	}
	r.configRefresh.WithLabelValues(outcome).Inc()
}
