package battery

import (
	"context"
	"math"
	"testing"
	"time"

	"gridpass/internal/logging"
	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func storeWith(
	history map[types.ID][]telemetry.SoCSample,
	status map[types.ID]float64,
	records []telemetry.HealthRecord,
) telemetry.Store {
	return telemetry.NewMemoryStoreWith(history, status, records, map[types.ID]float64{
		"VIN-SPEC": 60.0,
	})
}

func healthyRecord() telemetry.HealthRecord {
	return telemetry.HealthRecord{
		BatteryID:         "bat-1",
		SoHPercent:        94.0,
		ImpedanceMilliohm: 5.5,
		RatedCapacityKwh:  60.0,
		RecordedAt:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildSummaryWorkedExample(t *testing.T) {
	// 40% -> 70% on a 60 kWh pack at SoH 94: effective 56.4 kWh,
	// deficit 0.3 * 56.4 = 16.92 kWh.
	store := storeWith(
		map[types.ID][]telemetry.SoCSample{
			"VIN-1": {{Timestamp: time.Now(), Percent: 40.0}},
		},
		nil,
		[]telemetry.HealthRecord{healthyRecord()},
	)
	svc := NewService(store, logging.Nop())

	got, err := svc.BuildSummary(context.Background(), "VIN-1", 0.70)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if !almostEqual(got.CurrentSoC, 0.40, 1e-9) {
		t.Errorf("CurrentSoC = %v, want 0.40", got.CurrentSoC)
	}
	if !almostEqual(got.EffectiveCapacityKwh, 56.4, 1e-9) {
		t.Errorf("EffectiveCapacityKwh = %v, want 56.4", got.EffectiveCapacityKwh)
	}
	if !almostEqual(got.EnergyDeficitKwh, 16.92, 1e-9) {
		t.Errorf("EnergyDeficitKwh = %v, want 16.92", got.EnergyDeficitKwh)
	}
	if got.MaxSafePowerKw != healthyCeilingKw {
		t.Errorf("MaxSafePowerKw = %v, want %v", got.MaxSafePowerKw, healthyCeilingKw)
	}
	if len(got.HealthNotes) != 1 || got.HealthNotes[0] != noteHealthy {
		t.Errorf("HealthNotes = %v, want [%q]", got.HealthNotes, noteHealthy)
	}
}

func TestBuildSummaryDerating(t *testing.T) {
	cases := []struct {
		name       string
		soh        float64
		impedanceM float64
		wantKw     float64
		wantNote   string
	}{
		{"low soh", 80.0, 5.5, deratedCeilingKw, noteAging},
		{"high impedance", 94.0, 9000.0, deratedCeilingKw, noteAging},
		{"soh at threshold", 85.0, 5.5, healthyCeilingKw, noteHealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := healthyRecord()
			rec.SoHPercent = tc.soh
			rec.ImpedanceMilliohm = tc.impedanceM
			store := storeWith(nil, map[types.ID]float64{"VIN-1": 40}, []telemetry.HealthRecord{rec})
			svc := NewService(store, logging.Nop())

			got, err := svc.BuildSummary(context.Background(), "VIN-1", 0.8)
			if err != nil {
				t.Fatalf("BuildSummary: %v", err)
			}
			if got.MaxSafePowerKw != tc.wantKw {
				t.Errorf("MaxSafePowerKw = %v, want %v", got.MaxSafePowerKw, tc.wantKw)
			}
			if len(got.HealthNotes) != 1 || got.HealthNotes[0] != tc.wantNote {
				t.Errorf("HealthNotes = %v, want [%q]", got.HealthNotes, tc.wantNote)
			}
		})
	}
}

func TestBuildSummaryNoHealthRecord(t *testing.T) {
	store := storeWith(nil, map[types.ID]float64{"VIN-SPEC": 50}, nil)
	svc := NewService(store, logging.Nop())

	got, err := svc.BuildSummary(context.Background(), "VIN-SPEC", 0.8)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if got.RatedCapacityKwh != 60.0 || got.EffectiveCapacityKwh != 60.0 {
		t.Errorf("capacity = %v/%v, want nameplate 60", got.RatedCapacityKwh, got.EffectiveCapacityKwh)
	}
	if got.SoHPercent != 100.0 {
		t.Errorf("SoHPercent = %v, want 100", got.SoHPercent)
	}
	if len(got.HealthNotes) != 1 || got.HealthNotes[0] != noteNoData {
		t.Errorf("HealthNotes = %v, want [%q]", got.HealthNotes, noteNoData)
	}
}

func TestResolveCurrentSoC(t *testing.T) {
	cases := []struct {
		name    string
		history []telemetry.SoCSample
		status  map[types.ID]float64
		want    float64
	}{
		{"last history sample", samples(20, 55), nil, 0.55},
		{"history sample at 100 falls through", samples(20, 100), map[types.ID]float64{"VIN-1": 68}, 0.68},
		{"history sample at 0 falls through", samples(0), map[types.ID]float64{"VIN-1": 68}, 0.68},
		{"status clamped above", nil, map[types.ID]float64{"VIN-1": 140}, 1.0},
		{"status clamped below", nil, map[types.ID]float64{"VIN-1": -10}, 0.0},
		{"no data defaults", nil, nil, defaultSoCFraction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := storeWith(map[types.ID][]telemetry.SoCSample{"VIN-1": tc.history}, tc.status, nil)
			svc := NewService(store, logging.Nop())
			got := svc.resolveCurrentSoC(context.Background(), "VIN-1")
			if !almostEqual(got, tc.want, 1e-9) {
				t.Errorf("resolveCurrentSoC = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildSummaryAboveTarget(t *testing.T) {
	store := storeWith(samplesByVIN("VIN-1", 90), nil, []telemetry.HealthRecord{healthyRecord()})
	svc := NewService(store, logging.Nop())

	got, err := svc.BuildSummary(context.Background(), "VIN-1", 0.70)
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if got.EnergyDeficitKwh != 0 {
		t.Errorf("EnergyDeficitKwh = %v, want 0", got.EnergyDeficitKwh)
	}
}

func samples(percents ...float64) []telemetry.SoCSample {
	out := make([]telemetry.SoCSample, 0, len(percents))
	base := time.Date(2025, 9, 30, 6, 0, 0, 0, time.UTC)
	for i, p := range percents {
		out = append(out, telemetry.SoCSample{Timestamp: base.Add(time.Duration(i) * time.Minute), Percent: p})
	}
	return out
}

func samplesByVIN(vin types.ID, percents ...float64) map[types.ID][]telemetry.SoCSample {
	return map[types.ID][]telemetry.SoCSample{vin: samples(percents...)}
}
