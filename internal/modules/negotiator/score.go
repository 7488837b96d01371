package negotiator

import "math"

// Score normalization divisors: costs above 10 EUR, durations above 2 h and
// distances above 10 km bottom out at zero.
const (
	costNormDivisor     = 10.0
	durationNormDivisor = 2.0
	distanceNormDivisor = 10.0
)

// Weight sets per strategy. Chosen for the demo UI, not derived optima.
const (
	costWeightCost     = 0.7
	costWeightSpeed    = 0.2
	costWeightDistance = 0.1

	speedWeightSpeed    = 0.6
	speedWeightCost     = 0.3
	speedWeightDistance = 0.1

	balancedWeightSpeed    = 0.4
	balancedWeightCost     = 0.4
	balancedWeightDistance = 0.2
)

// MatchScore maps a chosen candidate to a 0-100 display score under the
// strategy's weighting.
func MatchScore(c Candidate, strategy Strategy) int {
	costNorm := math.Max(0, 1-c.TotalCostEur/costNormDivisor)
	speedNorm := math.Max(0, 1-c.SessionDurationH/durationNormDivisor)
	distanceNorm := math.Max(0, 1-c.DistanceKm/distanceNormDivisor)

	var score float64
	switch strategy {
	case StrategyCost:
		score = costWeightCost*costNorm + costWeightSpeed*speedNorm + costWeightDistance*distanceNorm
	case StrategySpeed:
		score = speedWeightSpeed*speedNorm + speedWeightCost*costNorm + speedWeightDistance*distanceNorm
	default:
		score = balancedWeightSpeed*speedNorm + balancedWeightCost*costNorm + balancedWeightDistance*distanceNorm
	}

	return int(math.Round(score * 100))
}
