// Package metrics exports training activity as Prometheus metrics.
package metrics

import (
	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qlearn"

var _ i.Recorder = &Recorder{}

// Recorder counts completed training runs.
type Recorder struct {
	runs      prometheus.Counter
	episodes  prometheus.Counter
	steps     prometheus.Counter
	goals     prometheus.Counter
	overflows prometheus.Counter
	duration  prometheus.Histogram
}

// NewRecorder registers the training metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Completed training calls.",
		}),
		episodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_episodes_total",
			Help:      "Episodes run across all training calls.",
		}),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_steps_total",
			Help:      "Q-value updates applied across all training calls.",
		}),
		goals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_goals_total",
			Help:      "Episodes that reached the goal.",
		}),
		overflows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_overflows_total",
			Help:      "Updates that overflowed and were stored as 0.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time of a training call.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// ObserveRun implements i.Recorder.
func (r *Recorder) ObserveRun(run *dmn.TrainingRun) {
	r.runs.Inc()
	r.episodes.Add(float64(run.Episodes))
	r.steps.Add(float64(run.TotalSteps))
	r.goals.Add(float64(run.GoalsReached))
	r.overflows.Add(float64(run.Overflows))
	r.duration.Observe(run.Duration.Seconds())
}
