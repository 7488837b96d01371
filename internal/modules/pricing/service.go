// README: Pricing engine (connector selection, tier lookup, energy estimation).
package pricing

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

const reasonNoConnectors = "no_connectors_available"

type Service struct {
	telemetry telemetry.Store
	log       zerolog.Logger
}

func NewService(store telemetry.Store, log zerolog.Logger) *Service {
	return &Service{telemetry: store, log: log}
}

// EstimateParams identifies one pricing question: which vehicle, at which
// station, optionally pinned to a reserved connector or to an exact energy
// amount (used by the candidate generator so cost matches delivered energy).
type EstimateParams struct {
	VIN               types.ID
	Station           registry.Snapshot
	BatteryID         types.ID
	Reserved          *registry.Connector
	EnergyOverrideKwh *float64
}

// Estimate prices a charging session. It never returns an error: missing
// telemetry degrades to defaults, and a station without connectors yields a
// zero-cost result with a reason.
func (s *Service) Estimate(ctx context.Context, p EstimateParams) Result {
	connector := selectConnector(p.Station, p.Reserved)
	if connector == nil {
		return Result{Currency: Currency, TotalEur: 0.0, Reason: reasonNoConnectors}
	}

	tier := tierFor(connector.PowerKw)

	estimation := s.estimateEnergy(ctx, p.VIN, p.BatteryID)
	energyKwh := estimation.EstimatedEnergyKwh
	if p.EnergyOverrideKwh != nil {
		energyKwh = round2(*p.EnergyOverrideKwh)
		estimation.Method = MethodOverride
		estimation.EstimatedEnergyKwh = energyKwh
		estimation.OverrideValueKwh = energyKwh
	}

	energyComponent := round2(energyKwh * tier.RateEurPerKwh)
	total := round2(energyComponent + SessionFeeEur)

	return Result{
		Currency:           Currency,
		ConnectorID:        connector.ID,
		PowerKw:            connector.PowerKw,
		PricingTier:        tier.Name,
		RateEurPerKwh:      tier.RateEurPerKwh,
		EnergyKwh:          energyKwh,
		EnergyComponentEur: energyComponent,
		SessionFeeEur:      SessionFeeEur,
		TotalEur:           total,
		EstimationContext:  &estimation,
	}
}

// selectConnector prefers the reserved connector, else the highest-rated one.
func selectConnector(station registry.Snapshot, reserved *registry.Connector) *registry.Connector {
	if reserved != nil {
		return reserved
	}
	if len(station.Connectors) == 0 {
		return nil
	}
	best := &station.Connectors[0]
	for i := 1; i < len(station.Connectors); i++ {
		if station.Connectors[i].PowerKw > best.PowerKw {
			best = &station.Connectors[i]
		}
	}
	return best
}

// estimateEnergy derives the billed energy from the vehicle's charge history
// when at least two samples show a positive delta, else the fixed default.
func (s *Service) estimateEnergy(ctx context.Context, vin, batteryID types.ID) Estimation {
	capacityCtx := s.resolveCapacity(ctx, vin, batteryID)
	estimation := Estimation{
		Method:             MethodDefaultFallback,
		CapacityContext:    capacityCtx,
		EstimatedEnergyKwh: DefaultSessionEnergyKwh,
	}

	history, err := s.telemetry.SoCHistory(ctx, vin)
	if err != nil {
		s.log.Warn().Err(err).Str("vin", string(vin)).Msg("soc history lookup failed; using default energy")
		return estimation
	}
	if len(history) < 2 {
		return estimation
	}

	deltaPercent := math.Max(history[len(history)-1].Percent-history[0].Percent, 0)
	estimated := capacityCtx.CapacityKwh * deltaPercent / 100.0
	if estimated <= 0 {
		return estimation
	}

	estimation.Method = MethodSoCHistory
	estimation.EstimatedEnergyKwh = round2(estimated)
	estimation.SoCDeltaPercent = round2(deltaPercent)
	return estimation
}

// resolveCapacity prefers SoH-derated capacity for a known battery, falling
// back to the vehicle's nameplate figure.
func (s *Service) resolveCapacity(ctx context.Context, vin, batteryID types.ID) CapacityContext {
	if batteryID != "" {
		rec, err := s.telemetry.HealthRecord(ctx, batteryID)
		if err != nil {
			s.log.Warn().Err(err).Str("battery_id", string(batteryID)).Msg("health record lookup failed")
		} else if rec != nil {
			return CapacityContext{
				Source:      CapacityFromBatterySoH,
				CapacityKwh: rec.RatedCapacityKwh * rec.SoHPercent / 100.0,
				BatterySoH: &SoHSnapshot{
					BatteryID:  rec.BatteryID,
					SoHPercent: rec.SoHPercent,
					RecordedAt: rec.RecordedAt,
				},
			}
		}
	}

	nameplate, err := s.telemetry.NameplateCapacityKwh(ctx, vin)
	if err != nil {
		s.log.Warn().Err(err).Str("vin", string(vin)).Msg("nameplate lookup failed; using default capacity")
		nameplate = telemetry.DefaultNameplateKwh
	}
	return CapacityContext{Source: CapacityFromVehicleSpec, CapacityKwh: nameplate}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
