package ai

import (
	"gridpass/internal/modules/battery"
	"gridpass/internal/types"
)

// CompactCandidate is the minimal projection of a charging candidate sent to
// the model. Keeping the payload small keeps latency and token cost down.
type CompactCandidate struct {
	StationID      types.ID `json:"station_id"`
	ConnectorID    types.ID `json:"connector_id"`
	TotalCostEur   float64  `json:"total_cost_eur"`
	DurationH      float64  `json:"duration_h"`
	DistanceKm     float64  `json:"distance_km"`
	CanMeetReadyBy bool     `json:"can_meet_ready_by"`
}

// DecisionRequest carries everything the model needs to pick a candidate.
type DecisionRequest struct {
	Strategy   string             `json:"strategy"`
	Battery    battery.Summary    `json:"battery"`
	Candidates []CompactCandidate `json:"candidates"`
}

// Decision is the model's answer: one station/connector pair.
type Decision struct {
	StationID   types.ID `json:"station_id"`
	ConnectorID types.ID `json:"connector_id"`
}
