// README: Pricing engine data model (tiers, estimation provenance, result).
package pricing

import (
	"math"
	"time"

	"gridpass/internal/types"
)

const (
	// DefaultSessionEnergyKwh is charged when no better estimate exists.
	DefaultSessionEnergyKwh = 28.0
	// SessionFeeEur is the fixed activation fee added to every session.
	SessionFeeEur = 0.75

	Currency = "EUR"
)

// EnergyMethod records how the billed energy amount was estimated.
type EnergyMethod string

const (
	MethodSoCHistory      EnergyMethod = "soc_history"
	MethodOverride        EnergyMethod = "override"
	MethodDefaultFallback EnergyMethod = "default_fallback"
)

// CapacitySource records where the battery capacity figure came from.
type CapacitySource string

const (
	CapacityFromBatterySoH  CapacitySource = "battery_soh"
	CapacityFromVehicleSpec CapacitySource = "vehicle_specs"
)

// Tier maps a connector power band to a per-kWh rate.
type Tier struct {
	Name          string
	MaxPowerKw    float64
	RateEurPerKwh float64
}

// powerTiers is ordered by ascending power bound; the unbounded top tier is
// the fallback for any power rating.
var powerTiers = []Tier{
	{Name: "AC urban ≤25kW", MaxPowerKw: 25, RateEurPerKwh: 0.25},
	{Name: "Fast DC 26-150kW", MaxPowerKw: 150, RateEurPerKwh: 0.34},
	{Name: "HPC 151-350kW", MaxPowerKw: 350, RateEurPerKwh: 0.42},
	{Name: "Ultra HPC 351kW+", MaxPowerKw: math.Inf(1), RateEurPerKwh: 0.47},
}

// tierFor returns the first tier whose bound covers the power rating.
func tierFor(powerKw float64) Tier {
	for _, t := range powerTiers {
		if powerKw <= t.MaxPowerKw {
			return t
		}
	}
	return powerTiers[len(powerTiers)-1]
}

// SoHSnapshot is the state-of-health evidence attached to a capacity figure.
type SoHSnapshot struct {
	BatteryID  types.ID  `json:"battery_id"`
	SoHPercent float64   `json:"soh_percent"`
	RecordedAt time.Time `json:"timestamp"`
}

// CapacityContext names the capacity figure used and where it came from.
type CapacityContext struct {
	Source      CapacitySource `json:"source"`
	CapacityKwh float64        `json:"capacity_kwh"`
	BatterySoH  *SoHSnapshot   `json:"battery_soh,omitempty"`
}

// Estimation is the full provenance of the billed energy amount. It rides
// along in every Result so a price can always be explained afterwards.
type Estimation struct {
	Method             EnergyMethod    `json:"energy_method"`
	CapacityContext    CapacityContext `json:"capacity_context"`
	EstimatedEnergyKwh float64         `json:"estimated_energy_kwh"`
	SoCDeltaPercent    float64         `json:"soc_delta_percent,omitempty"`
	OverrideValueKwh   float64         `json:"override_value_kwh,omitempty"`
}

// Result is the priced outcome for one station/connector pair.
type Result struct {
	Currency           string      `json:"currency"`
	ConnectorID        types.ID    `json:"connector_id,omitempty"`
	PowerKw            float64     `json:"power_kw,omitempty"`
	PricingTier        string      `json:"pricing_tier,omitempty"`
	RateEurPerKwh      float64     `json:"rate_eur_per_kwh,omitempty"`
	EnergyKwh          float64     `json:"energy_kwh,omitempty"`
	EnergyComponentEur float64     `json:"energy_component_eur,omitempty"`
	SessionFeeEur      float64     `json:"session_fee_eur,omitempty"`
	TotalEur           float64     `json:"total_eur"`
	Reason             string      `json:"reason,omitempty"`
	EstimationContext  *Estimation `json:"estimation_context,omitempty"`
}
