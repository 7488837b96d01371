// README: Battery summary builder (SoC resolution, capacity, power derating).
package battery

import (
	"context"

	"github.com/rs/zerolog"

	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

// Health-derating rule: batteries below the SoH threshold or above the
// impedance threshold get the reduced ceiling. These are configuration
// constants of the demo heuristic, not a physical model.
const (
	sohDerateThresholdPercent = 85.0
	impedanceDerateOhm        = 8.0
	deratedCeilingKw          = 80.0
	healthyCeilingKw          = 150.0

	// defaultSoCFraction is assumed when neither history nor a status
	// reading exists for the vehicle.
	defaultSoCFraction = 0.5

	milliohmPerOhm = 1000.0
)

const (
	noteAging   = "Battery aging; reduce fast charging power"
	noteHealthy = "Battery in good condition"
	noteNoData  = "No battery health record; assuming nominal condition"
)

type Service struct {
	telemetry telemetry.Store
	log       zerolog.Logger
}

func NewService(store telemetry.Store, log zerolog.Logger) *Service {
	return &Service{telemetry: store, log: log}
}

// BuildSummary computes a fresh battery summary for one negotiation request.
// Missing telemetry degrades to defaults; it never fails the request.
func (s *Service) BuildSummary(ctx context.Context, vin types.ID, targetSoC float64) (Summary, error) {
	socNow := s.resolveCurrentSoC(ctx, vin)

	// TODO: match the health record by batteryId instead of taking the
	// newest record globally. The demo fleet has a single active pack, so
	// the newest record is treated as that pack's state.
	rec, err := s.telemetry.NewestHealthRecord(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("vin", string(vin)).Msg("health record lookup failed; using defaults")
		rec = nil
	}

	summary := Summary{
		VIN:        vin,
		CurrentSoC: socNow,
		TargetSoC:  targetSoC,
	}

	if rec == nil {
		nameplate, err := s.telemetry.NameplateCapacityKwh(ctx, vin)
		if err != nil {
			nameplate = telemetry.DefaultNameplateKwh
		}
		summary.SoHPercent = 100.0
		summary.RatedCapacityKwh = nameplate
		summary.EffectiveCapacityKwh = nameplate
		summary.MaxSafePowerKw = healthyCeilingKw
		summary.HealthNotes = []string{noteNoData}
	} else {
		summary.BatteryID = rec.BatteryID
		summary.SoHPercent = rec.SoHPercent
		summary.ImpedanceOhm = rec.ImpedanceMilliohm / milliohmPerOhm
		summary.RatedCapacityKwh = rec.RatedCapacityKwh
		summary.EffectiveCapacityKwh = rec.RatedCapacityKwh * rec.SoHPercent / 100.0

		if rec.SoHPercent < sohDerateThresholdPercent || summary.ImpedanceOhm > impedanceDerateOhm {
			summary.MaxSafePowerKw = deratedCeilingKw
			summary.HealthNotes = []string{noteAging}
		} else {
			summary.MaxSafePowerKw = healthyCeilingKw
			summary.HealthNotes = []string{noteHealthy}
		}
	}

	// Deficit is floored at zero: a battery above target needs no charge.
	deficit := (targetSoC - socNow) * summary.EffectiveCapacityKwh
	if deficit < 0 {
		deficit = 0
	}
	summary.EnergyDeficitKwh = deficit

	return summary, nil
}

// resolveCurrentSoC prefers the last history sample strictly inside (0,100),
// then the standalone status reading clamped to [0,1], then the default.
func (s *Service) resolveCurrentSoC(ctx context.Context, vin types.ID) float64 {
	history, err := s.telemetry.SoCHistory(ctx, vin)
	if err != nil {
		s.log.Warn().Err(err).Str("vin", string(vin)).Msg("soc history lookup failed")
	} else if len(history) > 0 {
		last := history[len(history)-1].Percent
		if last > 0.0 && last < 100.0 {
			return last / 100.0
		}
	}

	status, ok, err := s.telemetry.CurrentSoCPercent(ctx, vin)
	if err != nil {
		s.log.Warn().Err(err).Str("vin", string(vin)).Msg("status reading lookup failed")
	} else if ok {
		return clamp01(status / 100.0)
	}

	return defaultSoCFraction
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
