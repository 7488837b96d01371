package anchor

import (
	"context"
	"errors"
	"testing"
	"time"

	"gridpass/internal/types"
)

func TestNewRecordDeterministicHash(t *testing.T) {
	at := time.Date(2025, 9, 30, 10, 0, 0, 0, time.UTC)
	payload := map[string]any{"total_eur": 6.5, "station_id": "st-1"}

	a, err := NewRecord("sess-1", payload, at)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	b, err := NewRecord("sess-2", payload, at)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	if a.PlanHash != b.PlanHash {
		t.Errorf("identical payloads hashed differently: %s vs %s", a.PlanHash, b.PlanHash)
	}
	if len(a.PlanHash) != 64 {
		t.Errorf("PlanHash length = %d, want 64 hex chars", len(a.PlanHash))
	}
	if a.LedgerTx != "TX_DUMMY_sess-1" {
		t.Errorf("LedgerTx = %q", a.LedgerTx)
	}
}

func TestNewRecordDifferentPayloads(t *testing.T) {
	at := time.Now()
	a, _ := NewRecord("sess-1", map[string]any{"total_eur": 6.5}, at)
	b, _ := NewRecord("sess-1", map[string]any{"total_eur": 7.5}, at)
	if a.PlanHash == b.PlanHash {
		t.Error("different payloads produced the same hash")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	rec, err := NewRecord("sess-1", map[string]any{"k": "v"}, time.Now())
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PlanHash != rec.PlanHash {
		t.Errorf("PlanHash = %s, want %s", got.PlanHash, rec.PlanHash)
	}
}

func TestMemoryStoreListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		rec, _ := NewRecord(types.ID(id), map[string]string{"id": id}, time.Now())
		if err := store.Put(ctx, rec); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}
	// Re-anchoring must not duplicate the index entry.
	rec, _ := NewRecord("a", map[string]string{"id": "a2"}, time.Now())
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("re-Put: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d records, want 3", len(list))
	}
	wantOrder := []string{"c", "a", "b"}
	for i, rec := range list {
		if string(rec.SessionID) != wantOrder[i] {
			t.Errorf("list[%d] = %s, want %s", i, rec.SessionID, wantOrder[i])
		}
	}
}
