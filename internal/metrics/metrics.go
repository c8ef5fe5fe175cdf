package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DisputeMetrics tracks the dispute evaluation pipeline.
type DisputeMetrics struct {
	DisputesCreatedTotal    *prometheus.CounterVec
	ValidationFailuresTotal *prometheus.CounterVec
	AssessmentDuration      *prometheus.HistogramVec
}

func NewDisputeMetrics() *DisputeMetrics {
	return &DisputeMetrics{
		DisputesCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_created_total",
				Help: "Total number of disputes created, by assessed fraud likelihood",
			},
			[]string{"fraud_likelihood"},
		),

		ValidationFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispute_validation_failures_total",
				Help: "Total number of dispute requests rejected during validation",
			},
			[]string{"kind"},
		),

		AssessmentDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispute_assessment_duration_seconds",
				Help:    "Time spent waiting on the reasoning service per dispute",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"outcome"},
		),
	}
}

func (m *DisputeMetrics) RecordDisputeCreated(likelihood string) {
	m.DisputesCreatedTotal.WithLabelValues(likelihood).Inc()
}

func (m *DisputeMetrics) RecordValidationFailure(kind string) {
	m.ValidationFailuresTotal.WithLabelValues(kind).Inc()
}

func (m *DisputeMetrics) RecordAssessmentDuration(outcome string, seconds float64) {
	m.AssessmentDuration.WithLabelValues(outcome).Observe(seconds)
}
