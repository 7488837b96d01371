package negotiator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridpass/internal/ai"
	"gridpass/internal/logging"
	"gridpass/internal/metrics"
	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

var testNow = time.Date(2025, 9, 30, 10, 0, 0, 0, time.UTC)

type fakeProvider struct {
	decision *ai.Decision
	err      error
	lastReq  ai.DecisionRequest
}

func (f *fakeProvider) ChooseCandidate(_ context.Context, req ai.DecisionRequest) (*ai.Decision, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}

func (f *fakeProvider) Close() {}

// testTelemetry yields a 60 kWh pack at SoH 94 with high impedance, so the
// safe ceiling is 80 kW, and a current SoC of 40%.
func testTelemetry() telemetry.Store {
	return telemetry.NewMemoryStoreWith(
		map[types.ID][]telemetry.SoCSample{
			"VIN-1": {{Timestamp: testNow.Add(-time.Hour), Percent: 40.0}},
		},
		nil,
		[]telemetry.HealthRecord{{
			BatteryID:         "bat-1",
			SoHPercent:        94.0,
			ImpedanceMilliohm: 9000.0,
			RatedCapacityKwh:  60.0,
			RecordedAt:        testNow.Add(-24 * time.Hour),
		}},
		nil,
	)
}

func testRegistry() *registry.Store {
	return registry.NewStore([]registry.Station{
		{
			ID:       "st-1",
			Name:     "Test Hub",
			Operator: "GridPass",
			Location: registry.Location{
				City:     "Helsinki",
				Position: types.Point{Lat: 60.17, Lng: 24.94},
			},
			Connectors: []registry.Connector{
				{ID: "c-1", Type: registry.TypeCCS2, PowerKw: 150, Status: registry.StatusAvailable},
				{ID: "c-2", Type: registry.TypeCCS2, PowerKw: 300, Status: registry.StatusOccupied},
			},
		},
	})
}

func newTestService(t *testing.T, selector Selector) *Service {
	t.Helper()
	store := testTelemetry()
	svc := NewService(
		testRegistry(),
		battery.NewService(store, logging.Nop()),
		pricing.NewService(store, logging.Nop()),
		selector,
		metrics.NewNegotiationMetrics(prometheus.NewRegistry()),
		logging.Nop(),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func baseRequest() Request {
	return Request{
		Origin:    types.Point{Lat: 60.17, Lng: 24.94},
		TargetSoC: 0.70,
		Strategy:  StrategyBalanced,
		VIN:       "VIN-1",
	}
}

func TestNegotiateBaselinePlan(t *testing.T) {
	svc := newTestService(t, BaselineSelector{})

	resp, err := svc.Negotiate(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Equal(t, 1, resp.CandidateCount)

	c := resp.Candidates[0]
	// 40% -> 70% on effective 56.4 kWh is 16.92 kWh; ceiling 80 kW beats the
	// 150 kW connector, so 16.92/80 = 0.2115 h.
	assert.InDelta(t, 16.92, resp.Battery.EnergyDeficitKwh, 1e-9)
	assert.Equal(t, 80.0, c.EffectivePowerKw)
	assert.InDelta(t, 0.2115, c.SessionDurationH, 1e-9)
	assert.True(t, c.CanMeetReadyBy)
	assert.Equal(t, 6.50, c.TotalCostEur)

	require.NotNil(t, resp.Plan)
	plan := resp.Plan
	assert.Equal(t, StrategyBalanced, plan.Meta.StrategyUsed)
	assert.Equal(t, 70, plan.Meta.MatchScore)
	assert.Equal(t, types.ID("st-1"), plan.Station.StationID)
	assert.Equal(t, 150.0, plan.Station.MaxPowerKw)
	assert.Equal(t, 40, plan.ChargingDetails.CurrentLevelPercent)
	assert.Equal(t, 70, plan.ChargingDetails.TargetLevelPercent)
	assert.Equal(t, 16.92, plan.ChargingDetails.EnergyNeededKwh)
	assert.Equal(t, testNow.Add(2*time.Hour).Format("15:04"), plan.ChargingDetails.ReadyBy)
	assert.Equal(t, 13, plan.Pricing.EstimatedDurationMin)
	assert.Equal(t, 6.50, plan.Pricing.OriginalPriceEur)
	assert.Equal(t, 6.50, plan.Pricing.NegotiatedPriceEur)
	assert.Equal(t, 0.0, plan.Pricing.SavingsEur)
}

func TestNegotiateDeadlineWindow(t *testing.T) {
	cases := []struct {
		name    string
		offset  time.Duration
		wantErr error
	}{
		{"exactly 5 minutes rejected", 5 * time.Minute, ErrDeadlineTooSoon},
		{"one second past minimum accepted", 5*time.Minute + time.Second, nil},
		{"exactly 12 hours accepted", 12 * time.Hour, nil},
		{"13 hours rejected", 13 * time.Hour, ErrDeadlineTooFar},
		{"in the past rejected", -time.Hour, ErrDeadlineTooSoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, BaselineSelector{})
			req := baseRequest()
			deadline := testNow.Add(tc.offset)
			req.Deadline = &deadline

			_, err := svc.Negotiate(context.Background(), req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNegotiateNothingToCharge(t *testing.T) {
	svc := newTestService(t, BaselineSelector{})
	req := baseRequest()
	req.TargetSoC = 0.30 // below the 40% current SoC

	resp, err := svc.Negotiate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ReasonNothingToCharge, resp.Reason)
	assert.Nil(t, resp.Plan)
	assert.Equal(t, 0, resp.CandidateCount)
}

func TestNegotiateNoCandidates(t *testing.T) {
	store := testTelemetry()
	svc := NewService(
		registry.NewStore([]registry.Station{{
			ID:   "st-empty",
			Name: "All Occupied",
			Connectors: []registry.Connector{
				{ID: "c-1", Type: registry.TypeCCS2, PowerKw: 150, Status: registry.StatusOccupied},
			},
		}}),
		battery.NewService(store, logging.Nop()),
		pricing.NewService(store, logging.Nop()),
		BaselineSelector{},
		metrics.NewNegotiationMetrics(prometheus.NewRegistry()),
		logging.Nop(),
	)
	svc.now = func() time.Time { return testNow }

	resp, err := svc.Negotiate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, ReasonNoFeasibleOption, resp.Reason)
	assert.Nil(t, resp.Plan)
}

func TestNegotiateOracleSelection(t *testing.T) {
	provider := &fakeProvider{decision: &ai.Decision{StationID: "st-1", ConnectorID: "c-1"}}
	svc := newTestService(t, NewOracleSelector(provider, time.Second, logging.Nop()))

	resp, err := svc.Negotiate(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, types.ID("st-1"), resp.Plan.Station.StationID)

	// The oracle only ever sees the compact projection.
	require.Len(t, provider.lastReq.Candidates, 1)
	assert.Equal(t, "balanced", provider.lastReq.Strategy)
	assert.Equal(t, types.ID("c-1"), provider.lastReq.Candidates[0].ConnectorID)
}

func TestNegotiateOracleUnknownPairFails(t *testing.T) {
	provider := &fakeProvider{decision: &ai.Decision{StationID: "st-1", ConnectorID: "ghost"}}
	svc := newTestService(t, NewOracleSelector(provider, time.Second, logging.Nop()))

	_, err := svc.Negotiate(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrOracleSelection)
}

func TestNegotiateOracleTransportFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream timeout")}
	svc := newTestService(t, NewOracleSelector(provider, time.Second, logging.Nop()))

	_, err := svc.Negotiate(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrOracleSelection)
}

func TestNegotiateRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := testTelemetry()
	svc := NewService(
		testRegistry(),
		battery.NewService(store, logging.Nop()),
		pricing.NewService(store, logging.Nop()),
		BaselineSelector{},
		metrics.NewNegotiationMetrics(reg),
		logging.Nop(),
	)
	svc.now = func() time.Time { return testNow }

	_, err := svc.Negotiate(context.Background(), baseRequest())
	require.NoError(t, err)

	got := testutil.ToFloat64(svc.metrics.Negotiations.WithLabelValues("balanced", metrics.OutcomePlanned))
	assert.Equal(t, 1.0, got)
}

func TestBaselineSelectorClampsToDeadline(t *testing.T) {
	candidates := []Candidate{
		{StationID: "a", ConnectorID: "c-1", ConnectorPowerKw: 50, SessionDurationH: 1.0, CanMeetReadyBy: true},
		{StationID: "b", ConnectorID: "c-2", ConnectorPowerKw: 150, SessionDurationH: 0.8, CanMeetReadyBy: false},
	}

	chosen, err := BaselineSelector{}.Select(context.Background(), battery.Summary{}, StrategyBalanced, candidates, 0.5)
	require.NoError(t, err)
	// Highest rated power wins even if infeasible; the session is clamped to
	// the time budget and ends with a partial charge.
	assert.Equal(t, types.ID("b"), chosen.StationID)
	assert.Equal(t, 0.5, chosen.SessionDurationH)
	assert.False(t, chosen.CanMeetReadyBy)
}
