package ai

import "context"

// DecisionProvider abstracts the LLM used to pick a charging candidate, so the
// negotiator can be tested with fakes and the vendor can be swapped.
type DecisionProvider interface {
	// ChooseCandidate asks the model to pick exactly one candidate from the
	// offered set. The caller validates the answer against that set.
	ChooseCandidate(ctx context.Context, req DecisionRequest) (*Decision, error)

	// Close releases the underlying client resources.
	Close()
}
