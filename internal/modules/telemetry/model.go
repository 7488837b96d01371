// README: Battery telemetry records (SoC history and state-of-health).
package telemetry

import (
	"context"
	"time"

	"gridpass/internal/types"
)

// SoCSample is one state-of-charge reading from the vehicle data feed.
type SoCSample struct {
	Timestamp time.Time `json:"timestamp"`
	Percent   float64   `json:"value"`
}

// HealthRecord is the credential subject of one battery state-of-health
// attestation.
type HealthRecord struct {
	BatteryID          types.ID  `json:"battery_id"`
	PackUniqueID       string    `json:"pack_unique_id"`
	SoHPercent         float64   `json:"soh_percent"`
	PreviousSoHPercent float64   `json:"previous_soh_percent"`
	RecordedAt         time.Time `json:"recorded_at"`
	ChargeCycles       int       `json:"charge_cycles"`
	ImpedanceMilliohm  float64   `json:"impedance_milliohm"`
	RatedCapacityKwh   float64   `json:"rated_capacity_kwh"`
	BatteryAge         string    `json:"battery_age"` // ISO 8601 duration, e.g. "P2Y6M"
}

// Store is the battery telemetry collaborator. All reads are snapshots; a nil
// record or empty history means "no data", never an error.
type Store interface {
	// SoCHistory returns the ordered state-of-charge samples for a vehicle.
	SoCHistory(ctx context.Context, vin types.ID) ([]SoCSample, error)

	// CurrentSoCPercent returns the latest standalone status reading for a
	// vehicle, used when no history exists. ok is false when there is none.
	CurrentSoCPercent(ctx context.Context, vin types.ID) (percent float64, ok bool, err error)

	// HealthRecord returns the latest state-of-health record for the given
	// battery identifier, or nil when none is known.
	HealthRecord(ctx context.Context, batteryID types.ID) (*HealthRecord, error)

	// NewestHealthRecord returns the most recently recorded state-of-health
	// record across all batteries, or nil when the store is empty.
	NewestHealthRecord(ctx context.Context) (*HealthRecord, error)

	// NameplateCapacityKwh returns the vehicle's nameplate battery capacity.
	// Unknown vehicles get a conservative default rather than an error.
	NameplateCapacityKwh(ctx context.Context, vin types.ID) (float64, error)
}
