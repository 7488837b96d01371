package negotiator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gridpass/internal/ai"
	"gridpass/internal/modules/battery"
)

// OracleSelector delegates the choice to an external decision model. The
// model only ever sees a compact projection of the candidates, and its answer
// is validated against the offered set: an unknown pair fails the whole
// negotiation rather than silently falling back, so oracle malfunction stays
// visible.
type OracleSelector struct {
	provider ai.DecisionProvider
	timeout  time.Duration
	log      zerolog.Logger
}

func NewOracleSelector(provider ai.DecisionProvider, timeout time.Duration, log zerolog.Logger) *OracleSelector {
	return &OracleSelector{provider: provider, timeout: timeout, log: log}
}

func (s *OracleSelector) Select(ctx context.Context, bat battery.Summary, strategy Strategy, candidates []Candidate, _ float64) (*Candidate, error) {
	compact := make([]ai.CompactCandidate, 0, len(candidates))
	for _, c := range candidates {
		compact = append(compact, ai.CompactCandidate{
			StationID:      c.StationID,
			ConnectorID:    c.ConnectorID,
			TotalCostEur:   c.TotalCostEur,
			DurationH:      c.SessionDurationH,
			DistanceKm:     c.DistanceKm,
			CanMeetReadyBy: c.CanMeetReadyBy,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	decision, err := s.provider.ChooseCandidate(ctx, ai.DecisionRequest{
		Strategy:   string(strategy),
		Battery:    bat,
		Candidates: compact,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleSelection, err)
	}

	for i := range candidates {
		if candidates[i].StationID == decision.StationID && candidates[i].ConnectorID == decision.ConnectorID {
			chosen := candidates[i]
			return &chosen, nil
		}
	}

	s.log.Error().
		Str("station_id", string(decision.StationID)).
		Str("connector_id", string(decision.ConnectorID)).
		Msg("oracle chose a candidate outside the offered set")
	return nil, fmt.Errorf("%w: returned pair %s/%s is not in the candidate set",
		ErrOracleSelection, decision.StationID, decision.ConnectorID)
}
