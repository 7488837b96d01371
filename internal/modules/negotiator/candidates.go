package negotiator

import (
	"context"

	"gridpass/internal/geo"
	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/types"
)

// generateCandidates evaluates every available connector at every known
// station against the battery and the time budget. The returned order is
// station seed order by connector order; ranking is the selector's job.
func (s *Service) generateCandidates(
	ctx context.Context,
	bat battery.Summary,
	origin types.Point,
	timeBudgetH float64,
) []Candidate {
	if bat.EnergyDeficitKwh <= 0 {
		return nil
	}

	var candidates []Candidate
	for _, station := range s.registry.Snapshots() {
		distanceKm := geo.DistanceKm(origin, station.Location.Position)

		for _, connector := range station.Connectors {
			if connector.Status != registry.StatusAvailable {
				continue
			}

			effectivePowerKw := connector.PowerKw
			if bat.MaxSafePowerKw < effectivePowerKw {
				effectivePowerKw = bat.MaxSafePowerKw
			}
			if effectivePowerKw <= 0 {
				continue
			}

			durationH := bat.EnergyDeficitKwh / effectivePowerKw

			// Price against the exact energy this candidate would deliver,
			// pinned to this connector.
			reserved := connector
			deficit := bat.EnergyDeficitKwh
			cost := s.pricing.Estimate(ctx, pricing.EstimateParams{
				VIN:               bat.VIN,
				Station:           station,
				BatteryID:         bat.BatteryID,
				Reserved:          &reserved,
				EnergyOverrideKwh: &deficit,
			})

			candidates = append(candidates, Candidate{
				StationID:           station.ID,
				StationName:         station.Name,
				DistanceKm:          distanceKm,
				Location:            station.Location,
				AvailableConnectors: station.AvailableConnectors,
				TotalConnectors:     station.TotalConnectors,
				ConnectorID:         connector.ID,
				ConnectorType:       connector.Type,
				ConnectorPowerKw:    connector.PowerKw,
				EffectivePowerKw:    effectivePowerKw,
				SessionDurationH:    durationH,
				CanMeetReadyBy:      durationH <= timeBudgetH,
				Pricing:             cost,
				TotalCostEur:        cost.TotalEur,
			})
		}
	}
	return candidates
}
