package negotiator

import "testing"

func TestMatchScore(t *testing.T) {
	cases := []struct {
		name      string
		candidate Candidate
		strategy  Strategy
		want      int
	}{
		{
			name:      "cost strategy mid values",
			candidate: Candidate{TotalCostEur: 5, SessionDurationH: 1, DistanceKm: 5},
			strategy:  StrategyCost,
			want:      50,
		},
		{
			name:      "speed strategy",
			candidate: Candidate{TotalCostEur: 2, SessionDurationH: 0.5, DistanceKm: 0},
			strategy:  StrategySpeed,
			want:      79,
		},
		{
			name:      "balanced clamps to zero",
			candidate: Candidate{TotalCostEur: 20, SessionDurationH: 3, DistanceKm: 20},
			strategy:  StrategyBalanced,
			want:      0,
		},
		{
			name:      "balanced worked example",
			candidate: Candidate{TotalCostEur: 6.5, SessionDurationH: 0.2115, DistanceKm: 0},
			strategy:  StrategyBalanced,
			want:      70,
		},
		{
			name:      "perfect candidate",
			candidate: Candidate{TotalCostEur: 0, SessionDurationH: 0, DistanceKm: 0},
			strategy:  StrategyCost,
			want:      100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchScore(tc.candidate, tc.strategy); got != tc.want {
				t.Errorf("MatchScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategyBalanced {
		t.Errorf("empty strategy = %v, %v; want balanced", s, err)
	}
	for _, valid := range []string{"cost", "speed", "balanced"} {
		if _, err := ParseStrategy(valid); err != nil {
			t.Errorf("ParseStrategy(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseStrategy("fastest"); err == nil {
		t.Error("ParseStrategy(\"fastest\") expected error")
	}
}
