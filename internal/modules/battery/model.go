// README: Battery summary derived per negotiation request, never persisted.
package battery

import "gridpass/internal/types"

// Summary carries everything the negotiator needs to know about the vehicle's
// battery: charge state, usable capacity and a health-derated power ceiling.
type Summary struct {
	VIN                  types.ID `json:"vin"`
	BatteryID            types.ID `json:"battery_id"`
	CurrentSoC           float64  `json:"soc_now"`    // fraction in [0,1]
	TargetSoC            float64  `json:"target_soc"` // fraction in [0,1]
	SoHPercent           float64  `json:"soh"`
	ImpedanceOhm         float64  `json:"impedance_ohm"`
	RatedCapacityKwh     float64  `json:"max_capacity_kwh"`
	EffectiveCapacityKwh float64  `json:"effective_capacity_kwh"`
	EnergyDeficitKwh     float64  `json:"energy_needed_kwh"`
	MaxSafePowerKw       float64  `json:"max_safe_power_kw"`
	HealthNotes          []string `json:"health_notes"`
}
