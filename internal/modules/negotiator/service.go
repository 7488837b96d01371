// README: Negotiation engine (deadline policy, candidate scan, selection, plan).
package negotiator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"gridpass/internal/maps"
	"gridpass/internal/metrics"
	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
)

// Deadline policy window relative to request time.
const (
	defaultDeadlineOffset = 2 * time.Hour
	minDeadlineOffset     = 5 * time.Minute
	maxDeadlineOffset     = 12 * time.Hour
)

type Service struct {
	registry *registry.Store
	battery  *battery.Service
	pricing  *pricing.Service
	selector Selector
	travel   *maps.TravelService // optional
	metrics  *metrics.NegotiationMetrics
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(
	reg *registry.Store,
	bat *battery.Service,
	price *pricing.Service,
	selector Selector,
	m *metrics.NegotiationMetrics,
	log zerolog.Logger,
) *Service {
	return &Service{
		registry: reg,
		battery:  bat,
		pricing:  price,
		selector: selector,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// WithTravelService enables drive-time enrichment of plans.
func (s *Service) WithTravelService(travel *maps.TravelService) *Service {
	s.travel = travel
	return s
}

// Negotiate runs one full negotiation: validate the deadline, build the
// battery view, scan candidates, select one and format the plan.
func (s *Service) Negotiate(ctx context.Context, req Request) (*Response, error) {
	now := s.now().UTC()

	deadline, err := s.resolveDeadline(now, req.Deadline)
	if err != nil {
		s.metrics.RecordOutcome(string(req.Strategy), metrics.OutcomeRejected)
		return nil, err
	}

	bat, err := s.battery.BuildSummary(ctx, req.VIN, req.TargetSoC)
	if err != nil {
		return nil, err
	}

	timeBudgetH := deadline.Sub(now).Hours()
	if timeBudgetH < 0 {
		timeBudgetH = 0
	}

	candidates := s.generateCandidates(ctx, bat, req.Origin, timeBudgetH)
	resp := &Response{
		Battery:        bat,
		CandidateCount: len(candidates),
		Candidates:     candidates,
	}

	if bat.EnergyDeficitKwh <= 0 {
		resp.Reason = ReasonNothingToCharge
		s.metrics.RecordOutcome(string(req.Strategy), metrics.OutcomeInfeasible)
		return resp, nil
	}
	if len(candidates) == 0 {
		resp.Reason = ReasonNoFeasibleOption
		s.metrics.RecordOutcome(string(req.Strategy), metrics.OutcomeInfeasible)
		return resp, nil
	}

	chosen, err := s.selector.Select(ctx, bat, req.Strategy, candidates, timeBudgetH)
	if err != nil {
		s.metrics.RecordOutcome(string(req.Strategy), metrics.OutcomeOracleFailure)
		return nil, err
	}

	score := MatchScore(*chosen, req.Strategy)
	plan := BuildPlan(*chosen, bat, deadline, score, req.Strategy)

	if s.travel != nil {
		if duration, distance, err := s.travel.DriveEstimate(ctx, req.Origin, chosen.Location.Position); err != nil {
			s.log.Warn().Err(err).Str("station_id", string(chosen.StationID)).Msg("drive estimate failed")
		} else {
			plan.TravelEstimate = &PlanTravel{
				DriveDurationMin: int(duration.Minutes()),
				DriveDistance:    distance,
			}
		}
	}

	resp.Plan = &plan
	s.metrics.RecordOutcome(string(req.Strategy), metrics.OutcomePlanned)
	s.log.Info().
		Str("vin", string(req.VIN)).
		Str("strategy", string(req.Strategy)).
		Str("station_id", string(chosen.StationID)).
		Str("connector_id", string(chosen.ConnectorID)).
		Int("match_score", score).
		Msg("negotiation planned")
	return resp, nil
}

// resolveDeadline applies the default and enforces the policy window. A
// deadline exactly at the 12-hour bound is accepted; exactly at the 5-minute
// bound is rejected.
func (s *Service) resolveDeadline(now time.Time, requested *time.Time) (time.Time, error) {
	if requested == nil {
		return now.Add(defaultDeadlineOffset), nil
	}
	deadline := requested.UTC()
	if !deadline.After(now.Add(minDeadlineOffset)) {
		return time.Time{}, ErrDeadlineTooSoon
	}
	if deadline.After(now.Add(maxDeadlineOffset)) {
		return time.Time{}, ErrDeadlineTooFar
	}
	return deadline, nil
}
