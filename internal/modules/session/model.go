// README: Charging sessions (start/stop lifecycle over the station registry).
package session

import (
	"errors"
	"time"

	"gridpass/internal/modules/pricing"
	"gridpass/internal/types"
)

type State string

const (
	StateActive    State = "active"
	StateCompleted State = "completed"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
)

// Session is one charging visit: a connector held at a station, priced at
// start time.
type Session struct {
	ID          types.ID       `json:"id"`
	StationID   types.ID       `json:"station_id"`
	StationName string         `json:"station_name"`
	ConnectorID types.ID       `json:"connector_id"`
	VIN         types.ID       `json:"vin"`
	State       State          `json:"status"`
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     *time.Time     `json:"ended_at,omitempty"`
	EnergyKwh   float64        `json:"energy_kwh"`
	CostEur     float64        `json:"cost_eur"`
	Pricing     pricing.Result `json:"pricing"`
}
