// README: Trust anchoring of negotiated plans (hash + simulated ledger tx).
package anchor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gridpass/internal/types"
)

var ErrNotFound = errors.New("anchor not found")

// Record proves a plan existed at a point in time: a digest of the plan
// payload plus the (simulated) ledger transaction that anchored it.
type Record struct {
	SessionID  types.ID        `json:"session_id"`
	PlanHash   string          `json:"plan_hash"`
	LedgerTx   string          `json:"ledger_tx"`
	AnchoredAt time.Time       `json:"anchored_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewRecord anchors a plan payload for a session. The digest is the SHA-256
// of the payload's JSON encoding, so identical plans hash identically.
func NewRecord(sessionID types.ID, payload any, at time.Time) (Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode plan payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return Record{
		SessionID:  sessionID,
		PlanHash:   hex.EncodeToString(sum[:]),
		LedgerTx:   fmt.Sprintf("TX_DUMMY_%s", sessionID),
		AnchoredAt: at.UTC(),
		Payload:    raw,
	}, nil
}

// Store persists anchor records keyed by session.
type Store interface {
	Put(ctx context.Context, rec Record) error
	// Get returns ErrNotFound when no anchor exists for the session.
	Get(ctx context.Context, sessionID types.ID) (*Record, error)
	List(ctx context.Context) ([]Record, error)
}
