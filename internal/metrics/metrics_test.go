package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewNegotiationMetrics(reg)

	m.RecordOutcome("balanced", OutcomePlanned)
	m.RecordOutcome("balanced", OutcomePlanned)
	m.RecordOutcome("cost", OutcomeOracleFailure)

	expected := `
# HELP gridpass_negotiations_total Negotiation requests by strategy and outcome.
# TYPE gridpass_negotiations_total counter
gridpass_negotiations_total{outcome="oracle_failure",strategy="cost"} 1
gridpass_negotiations_total{outcome="planned",strategy="balanced"} 2
`
	if err := testutil.CollectAndCompare(m.Negotiations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected negotiation counter state: %v", err)
	}

	if got := testutil.ToFloat64(m.OracleFailures); got != 1 {
		t.Errorf("oracle failure counter = %v, want 1", got)
	}
}

func TestNewNegotiationMetricsReuse(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewNegotiationMetrics(reg)
	second := NewNegotiationMetrics(reg)

	first.RecordOutcome("speed", OutcomePlanned)
	second.RecordOutcome("speed", OutcomePlanned)

	if got := testutil.ToFloat64(first.Negotiations.WithLabelValues("speed", OutcomePlanned)); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *NegotiationMetrics
	m.RecordOutcome("balanced", OutcomePlanned)
}
