// README: Telemetry store backed by PostgreSQL (optional collaborator backend).
package telemetry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gridpass/internal/types"
)

// PGStore reads telemetry from Postgres. It implements the same Store
// interface as MemoryStore so the rest of the system cannot tell them apart.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) SoCHistory(ctx context.Context, vin types.ID) ([]SoCSample, error) {
	rows, err := s.db.Query(ctx, `
		SELECT recorded_at, soc_percent
		FROM soc_samples
		WHERE vin = $1
		ORDER BY recorded_at ASC`, string(vin),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SoCSample
	for rows.Next() {
		var sample SoCSample
		if err := rows.Scan(&sample.Timestamp, &sample.Percent); err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, rows.Err()
}

func (s *PGStore) CurrentSoCPercent(ctx context.Context, vin types.ID) (float64, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT soc_percent FROM vehicle_status WHERE vin = $1`, string(vin),
	)
	var percent float64
	err := row.Scan(&percent)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return percent, true, nil
}

func (s *PGStore) HealthRecord(ctx context.Context, batteryID types.ID) (*HealthRecord, error) {
	row := s.db.QueryRow(ctx, `
		SELECT battery_id, pack_unique_id, soh_percent, previous_soh_percent,
		       recorded_at, charge_cycles, impedance_milliohm, rated_capacity_kwh, battery_age
		FROM battery_health
		WHERE battery_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1`, string(batteryID),
	)
	return scanHealthRecord(row)
}

func (s *PGStore) NewestHealthRecord(ctx context.Context) (*HealthRecord, error) {
	row := s.db.QueryRow(ctx, `
		SELECT battery_id, pack_unique_id, soh_percent, previous_soh_percent,
		       recorded_at, charge_cycles, impedance_milliohm, rated_capacity_kwh, battery_age
		FROM battery_health
		ORDER BY recorded_at DESC
		LIMIT 1`,
	)
	return scanHealthRecord(row)
}

func (s *PGStore) NameplateCapacityKwh(ctx context.Context, vin types.ID) (float64, error) {
	row := s.db.QueryRow(ctx, `
		SELECT capacity_kwh FROM vehicle_specs WHERE vin = $1`, string(vin),
	)
	var capacity float64
	err := row.Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultNameplateKwh, nil
	}
	if err != nil {
		return 0, err
	}
	return capacity, nil
}

func scanHealthRecord(row pgx.Row) (*HealthRecord, error) {
	var rec HealthRecord
	err := row.Scan(
		&rec.BatteryID, &rec.PackUniqueID, &rec.SoHPercent, &rec.PreviousSoHPercent,
		&rec.RecordedAt, &rec.ChargeCycles, &rec.ImpedanceMilliohm, &rec.RatedCapacityKwh, &rec.BatteryAge,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
