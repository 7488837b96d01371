// README: In-memory telemetry store seeded with the demo fixtures.
package telemetry

import (
	"context"
	"time"

	"gridpass/internal/types"
)

// DefaultNameplateKwh is assumed for vehicles without a spec entry.
const DefaultNameplateKwh = 64.0

// MemoryStore holds telemetry snapshots in process memory. It is read-only
// after construction, so no locking is needed.
type MemoryStore struct {
	history    map[types.ID][]SoCSample
	status     map[types.ID]float64
	records    []HealthRecord // ordered oldest to newest
	nameplates map[types.ID]float64
}

// NewMemoryStore returns a store seeded with the demo fleet fixtures.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		history:    fixtureSoCHistory(),
		status:     fixtureBatteryStatus(),
		records:    fixtureHealthRecords(),
		nameplates: fixtureNameplates(),
	}
}

// NewMemoryStoreWith builds a store from explicit data. Used by tests.
func NewMemoryStoreWith(
	history map[types.ID][]SoCSample,
	status map[types.ID]float64,
	records []HealthRecord,
	nameplates map[types.ID]float64,
) *MemoryStore {
	return &MemoryStore{history: history, status: status, records: records, nameplates: nameplates}
}

func (s *MemoryStore) SoCHistory(_ context.Context, vin types.ID) ([]SoCSample, error) {
	samples := s.history[vin]
	return append([]SoCSample(nil), samples...), nil
}

func (s *MemoryStore) CurrentSoCPercent(_ context.Context, vin types.ID) (float64, bool, error) {
	v, ok := s.status[vin]
	return v, ok, nil
}

func (s *MemoryStore) HealthRecord(_ context.Context, batteryID types.ID) (*HealthRecord, error) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].BatteryID == batteryID {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) NewestHealthRecord(_ context.Context) (*HealthRecord, error) {
	if len(s.records) == 0 {
		return nil, nil
	}
	rec := s.records[len(s.records)-1]
	return &rec, nil
}

func (s *MemoryStore) NameplateCapacityKwh(_ context.Context, vin types.ID) (float64, error) {
	if v, ok := s.nameplates[vin]; ok {
		return v, nil
	}
	return DefaultNameplateKwh, nil
}

func fixtureSoCHistory() map[types.ID][]SoCSample {
	return map[types.ID][]SoCSample{
		"W1KAH5EB2PF093797": {
			{Timestamp: time.Date(2025, 9, 30, 5, 7, 57, 0, time.UTC), Percent: 0.0},
			{Timestamp: time.Date(2025, 9, 30, 6, 49, 26, 0, time.UTC), Percent: 100.0},
		},
		"TMAH081A1RJ012825": {
			{Timestamp: time.Date(2025, 9, 30, 5, 11, 24, 0, time.UTC), Percent: 29.715328467153277},
			{Timestamp: time.Date(2025, 9, 30, 8, 37, 22, 0, time.UTC), Percent: 84.35912408759123},
			{Timestamp: time.Date(2025, 9, 30, 8, 43, 24, 0, time.UTC), Percent: 85.96642335766423},
			{Timestamp: time.Date(2025, 9, 30, 8, 49, 26, 0, time.UTC), Percent: 87.57372262773721},
			{Timestamp: time.Date(2025, 9, 30, 8, 55, 29, 0, time.UTC), Percent: 89.18248175182481},
			{Timestamp: time.Date(2025, 9, 30, 9, 1, 31, 0, time.UTC), Percent: 90.7897810218978},
			{Timestamp: time.Date(2025, 9, 30, 9, 7, 34, 0, time.UTC), Percent: 92.39708029197078},
			{Timestamp: time.Date(2025, 9, 30, 9, 13, 36, 0, time.UTC), Percent: 94.00583941605835},
			{Timestamp: time.Date(2025, 9, 30, 9, 19, 39, 0, time.UTC), Percent: 95.61459854014596},
			{Timestamp: time.Date(2025, 9, 30, 9, 25, 41, 0, time.UTC), Percent: 97.22335766423356},
			{Timestamp: time.Date(2025, 9, 30, 9, 36, 49, 0, time.UTC), Percent: 99.99999999999996},
		},
	}
}

func fixtureBatteryStatus() map[types.ID]float64 {
	return map[types.ID]float64{
		"W1KAH5EB2PF093797": 68,
	}
}

func fixtureHealthRecords() []HealthRecord {
	return []HealthRecord{
		{
			BatteryID:          "did:itn:883c83bd37b342a9b8dda5",
			PackUniqueID:       "urn:uuid:97eff5ad-d828-4f14-a7d6-555fe918c64d",
			SoHPercent:         94.2,
			PreviousSoHPercent: 93.0,
			RecordedAt:         time.Date(2025, 5, 6, 18, 7, 49, 0, time.UTC),
			ChargeCycles:       834,
			ImpedanceMilliohm:  5.52,
			RatedCapacityKwh:   74.7,
			BatteryAge:         "P2Y6M",
		},
		{
			BatteryID:          "did:itn:4c622a42593f4763b0a7a8",
			PackUniqueID:       "urn:uuid:72cbfea6-6c3a-4ec6-9751-35230764a80a",
			SoHPercent:         92.1,
			PreviousSoHPercent: 90.2,
			RecordedAt:         time.Date(2025, 6, 6, 19, 48, 49, 0, time.UTC),
			ChargeCycles:       676,
			ImpedanceMilliohm:  5.44,
			RatedCapacityKwh:   73.6,
			BatteryAge:         "P6Y6M",
		},
	}
}

func fixtureNameplates() map[types.ID]float64 {
	return map[types.ID]float64{
		"W1KAH5EB2PF093797": 90.6,
		"TMAH081A1RJ012825": 77.4,
	}
}
