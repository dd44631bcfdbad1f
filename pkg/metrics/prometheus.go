package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	checksTotal    *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	macroScore     prometheus.Histogram
}

// New creates a recorder registered on reg. Nil means the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		checksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipcheck_checks_total",
				Help: "Total number of command runs by outcome",
			},
			[]string{"command", "result"},
		),
		upstreamErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipcheck_upstream_errors_total",
				Help: "Total number of failed upstream calls",
			},
			[]string{"service"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flipcheck_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		macroScore: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flipcheck_macro_score",
				Help:    "Distribution of composite macro scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
	}
}

// RecordCheck counts one command run.
func (r *Recorder) RecordCheck(command, result string) {
	r.checksTotal.WithLabelValues(command, result).Inc()
}

// RecordUpstreamError counts a failed call to an upstream service.
func (r *Recorder) RecordUpstreamError(service string) {
	r.upstreamErrors.WithLabelValues(service).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordScore(score float64) {
	r.macroScore.Observe(score)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordCheck(string, string)    {}
func (Nop) RecordUpstreamError(string)    {}
func (Nop) RecordLatency(string, float64) {}
func (Nop) RecordScore(float64)           {}
