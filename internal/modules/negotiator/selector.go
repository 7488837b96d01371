package negotiator

import (
	"context"

	"gridpass/internal/modules/battery"
)

// Selector reduces a non-empty candidate list to one choice.
type Selector interface {
	Select(ctx context.Context, bat battery.Summary, strategy Strategy, candidates []Candidate, timeBudgetH float64) (*Candidate, error)
}

// BaselineSelector is the deterministic fallback used when no decision oracle
// is configured: pick the connector with the greatest rated power and charge
// until the deficit is met or the deadline arrives, whichever comes first.
type BaselineSelector struct{}

func (BaselineSelector) Select(_ context.Context, _ battery.Summary, _ Strategy, candidates []Candidate, timeBudgetH float64) (*Candidate, error) {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.ConnectorPowerKw > best.ConnectorPowerKw {
			best = c
		}
	}

	// Partial charge is accepted: if the deadline arrives first the session
	// simply ends there, it is not a failure.
	if best.SessionDurationH > timeBudgetH {
		best.SessionDurationH = timeBudgetH
		best.CanMeetReadyBy = false
	}
	return &best, nil
}
