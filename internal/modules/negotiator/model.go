// README: Negotiation engine data model (strategies, candidates, request/response).
package negotiator

import (
	"errors"
	"fmt"
	"time"

	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/types"
)

// Strategy steers candidate selection and score weighting.
type Strategy string

const (
	StrategyCost     Strategy = "cost"
	StrategySpeed    Strategy = "speed"
	StrategyBalanced Strategy = "balanced"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")

	ErrDeadlineTooSoon = errors.New("departure time must be at least 5 minutes in the future")
	ErrDeadlineTooFar  = errors.New("departure time must be within the next 12 hours")

	// ErrOracleSelection covers both oracle transport failures and answers
	// that reference a candidate outside the offered set.
	ErrOracleSelection = errors.New("oracle selection failed")
)

// ParseStrategy validates a strategy label. Empty defaults to balanced.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyBalanced, nil
	case StrategyCost, StrategySpeed, StrategyBalanced:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Candidate is one priced charging option: a single available connector at a
// station, evaluated against the requester's battery and deadline.
type Candidate struct {
	StationID           types.ID               `json:"station_id"`
	StationName         string                 `json:"station_name"`
	DistanceKm          float64                `json:"distance_km"`
	Location            registry.Location      `json:"location"`
	AvailableConnectors int                    `json:"available_connectors"`
	TotalConnectors     int                    `json:"total_connectors"`
	ConnectorID         types.ID               `json:"connector_id"`
	ConnectorType       registry.ConnectorType `json:"connector_type"`
	ConnectorPowerKw    float64                `json:"connector_power_kw"`
	EffectivePowerKw    float64                `json:"effective_power_kw"`
	SessionDurationH    float64                `json:"session_duration_h"`
	CanMeetReadyBy      bool                   `json:"can_meet_ready_by"`
	Pricing             pricing.Result         `json:"pricing"`
	TotalCostEur        float64                `json:"total_cost_eur"`
}

// Request is one negotiation question from a driver.
type Request struct {
	Origin types.Point
	// TargetSoC is a fraction in (0,1].
	TargetSoC float64
	// Deadline is when the driver needs to leave; nil defaults to now+2h.
	Deadline *time.Time
	Strategy Strategy
	VIN      types.ID
}

// Outcome reasons for negotiations that end without a plan. These are valid
// business outcomes, not errors.
const (
	ReasonNothingToCharge  = "already_at_target_soc"
	ReasonNoFeasibleOption = "no_feasible_option"
)

// Response carries the full negotiation result: the battery view, every
// candidate considered, and either a plan or a reason there is none.
type Response struct {
	Battery        battery.Summary `json:"battery"`
	CandidateCount int             `json:"candidate_count"`
	Candidates     []Candidate     `json:"candidates"`
	Plan           *Plan           `json:"plan,omitempty"`
	Reason         string          `json:"reason,omitempty"`
}
