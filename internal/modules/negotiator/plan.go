package negotiator

import (
	"math"
	"time"

	"gridpass/internal/modules/battery"
	"gridpass/internal/types"
)

// comparisonMarkupEur is the fixed markup applied to the energy component to
// produce the "before" price in the savings framing.
const comparisonMarkupEur = 0.75

const clockFormat = "15:04"

// Plan is the presentation-ready negotiation result.
type Plan struct {
	Meta            PlanMeta    `json:"meta"`
	Station         PlanStation `json:"station"`
	ChargingDetails PlanCharge  `json:"charging_details"`
	Pricing         PlanPricing `json:"pricing"`
	TravelEstimate  *PlanTravel `json:"travel_estimate,omitempty"`
}

type PlanMeta struct {
	StrategyUsed Strategy `json:"strategy_used"`
	MatchScore   int      `json:"match_score"`
}

type PlanStation struct {
	StationID           types.ID `json:"station_id"`
	StationName         string   `json:"station_name"`
	DistanceKm          float64  `json:"distance_km"`
	MaxPowerKw          float64  `json:"max_power_kw"`
	AvailableConnectors int      `json:"available_connectors"`
	TotalConnectors     int      `json:"total_connectors"`
}

type PlanCharge struct {
	CurrentLevelPercent int     `json:"current_level_percent"`
	TargetLevelPercent  int     `json:"target_level_percent"`
	EnergyNeededKwh     float64 `json:"energy_needed_kwh"`
	ReadyBy             string  `json:"ready_by"`
	RecommendedStart    string  `json:"recommended_start"`
}

type PlanPricing struct {
	OriginalPriceEur     float64 `json:"original_price_eur"`
	NegotiatedPriceEur   float64 `json:"negotiated_price_eur"`
	EstimatedDurationMin int     `json:"estimated_duration_min"`
	SavingsEur           float64 `json:"savings_eur"`
}

// PlanTravel is the optional drive-time enrichment from the maps service.
type PlanTravel struct {
	DriveDurationMin int    `json:"drive_duration_min"`
	DriveDistance    string `json:"drive_distance"`
}

// BuildPlan formats the chosen candidate into the UI plan structure. Pure:
// same inputs, same plan.
func BuildPlan(chosen Candidate, bat battery.Summary, deadline time.Time, score int, strategy Strategy) Plan {
	durationH := chosen.SessionDurationH
	recommendedStart := deadline.Add(-time.Duration(durationH * float64(time.Hour)))

	originalPrice := chosen.Pricing.EnergyComponentEur + comparisonMarkupEur
	negotiatedPrice := chosen.TotalCostEur

	return Plan{
		Meta: PlanMeta{
			StrategyUsed: strategy,
			MatchScore:   score,
		},
		Station: PlanStation{
			StationID:           chosen.StationID,
			StationName:         chosen.StationName,
			DistanceKm:          chosen.DistanceKm,
			MaxPowerKw:          chosen.ConnectorPowerKw,
			AvailableConnectors: chosen.AvailableConnectors,
			TotalConnectors:     chosen.TotalConnectors,
		},
		ChargingDetails: PlanCharge{
			CurrentLevelPercent: int(math.Round(bat.CurrentSoC * 100)),
			TargetLevelPercent:  int(math.Round(bat.TargetSoC * 100)),
			EnergyNeededKwh:     round2(bat.EnergyDeficitKwh),
			ReadyBy:             deadline.Format(clockFormat),
			RecommendedStart:    recommendedStart.Format(clockFormat),
		},
		Pricing: PlanPricing{
			OriginalPriceEur:     round2(originalPrice),
			NegotiatedPriceEur:   round2(negotiatedPrice),
			EstimatedDurationMin: int(math.Round(durationH * 60)),
			SavingsEur:           round2(originalPrice - negotiatedPrice),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
