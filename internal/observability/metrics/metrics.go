package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake pipeline.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	webhookLatency   prometheus.Histogram
}

// Submission outcome labels.
const (
	OutcomeForwarded       = "forwarded"
	OutcomeDuplicate       = "duplicate"
	OutcomeValidationError = "validation_error"
	OutcomeRateLimited     = "rate_limited"
	OutcomeWebhookError    = "webhook_error"
)

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartpro",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Consultation submissions by outcome",
		}, []string{"outcome"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smartpro",
			Subsystem: "intake",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of Make.com webhook delivery",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.webhookLatency)
	return m
}

// ObserveSubmission counts one submission with the given outcome.
func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveWebhookLatency records one delivery attempt's duration.
func (m *IntakeMetrics) ObserveWebhookLatency(seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.Observe(seconds)
}
