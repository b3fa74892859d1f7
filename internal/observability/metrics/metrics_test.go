package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveSubmission(OutcomeForwarded)
	m.ObserveSubmission(OutcomeForwarded)
	m.ObserveSubmission(OutcomeDuplicate)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues(OutcomeForwarded)); got != 2 {
		t.Errorf("forwarded: got %v", got)
	}
	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues(OutcomeDuplicate)); got != 1 {
		t.Errorf("duplicate: got %v", got)
	}
}

func TestObserveWebhookLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveWebhookLatency(0.25)

	count, err := testutil.GatherAndCount(reg, "smartpro_intake_webhook_latency_seconds")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Errorf("expected histogram registered, got %d series", count)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveSubmission(OutcomeRateLimited)
	m.ObserveWebhookLatency(1.0)
}
