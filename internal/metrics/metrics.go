// README: Prometheus metrics for the negotiation pipeline.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Negotiation outcomes recorded per request.
const (
	OutcomePlanned       = "planned"
	OutcomeInfeasible    = "infeasible"
	OutcomeRejected      = "rejected"
	OutcomeOracleFailure = "oracle_failure"
)

// NegotiationMetrics counts negotiation requests by strategy and outcome.
type NegotiationMetrics struct {
	Negotiations   *prometheus.CounterVec
	OracleFailures prometheus.Counter
}

// NewNegotiationMetrics registers the counters on reg, reusing collectors
// that are already registered so repeated construction is safe.
func NewNegotiationMetrics(reg prometheus.Registerer) *NegotiationMetrics {
	m := &NegotiationMetrics{
		Negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpass_negotiations_total",
			Help: "Negotiation requests by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		OracleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridpass_oracle_failures_total",
			Help: "Oracle selection calls that failed or returned invalid candidates.",
		}),
	}

	m.Negotiations = registerCounterVec(reg, m.Negotiations)
	m.OracleFailures = registerCounter(reg, m.OracleFailures)
	return m
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

// RecordOutcome increments the negotiation counter for one finished request.
func (m *NegotiationMetrics) RecordOutcome(strategy, outcome string) {
	if m == nil {
		return
	}
	m.Negotiations.WithLabelValues(strategy, outcome).Inc()
	if outcome == OutcomeOracleFailure {
		m.OracleFailures.Inc()
	}
}
