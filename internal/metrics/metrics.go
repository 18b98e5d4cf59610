// Package metrics defines Prometheus metrics for a single client run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bfhl_client"

// Recorder owns an isolated registry so a run can be exported as a
// node-exporter textfile without touching the global registry.
type Recorder struct {
	registry *prometheus.Registry

	StageDuration  *prometheus.HistogramVec
	SubmitAttempts *prometheus.CounterVec
	Problems       *prometheus.CounterVec
	OutcomeSize    prometheus.Gauge
	LastRunSuccess prometheus.Gauge
	LastRunTime    prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each run stage in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage", "status"},
		),
		SubmitAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submit_attempts_total",
				Help:      "Result submission attempts by result",
			},
			[]string{"result"},
		),
		Problems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "problems_total",
				Help:      "Challenges solved by problem kind",
			},
			[]string{"kind"},
		),
		OutcomeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outcome_size",
			Help:      "Number of entries in the submitted outcome",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run submitted its result, 0 otherwise",
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.StageDuration,
		r.SubmitAttempts,
		r.Problems,
		r.OutcomeSize,
		r.LastRunSuccess,
		r.LastRunTime,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveStage records how long a stage took and whether it failed.
func (r *Recorder) ObserveStage(stage string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.StageDuration.WithLabelValues(stage, status).Observe(time.Since(start).Seconds())
}

// Attempt counts one submission attempt.
func (r *Recorder) Attempt(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.SubmitAttempts.WithLabelValues(result).Inc()
}

// Finish marks the end of a run.
func (r *Recorder) Finish(now time.Time, err error) {
	if err != nil {
		r.LastRunSuccess.Set(0)
	} else {
		r.LastRunSuccess.Set(1)
	}
	r.LastRunTime.Set(float64(now.Unix()))
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically via a temp file.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
