// README: In-memory station registry with mutex-guarded connector transitions.
package registry

import (
	"errors"
	"sync"

	"gridpass/internal/types"
)

var (
	ErrStationNotFound      = errors.New("station not found")
	ErrConnectorNotFound    = errors.New("connector not found")
	ErrNoConnectorAvailable = errors.New("no connector available")
)

// Store owns all station state. Connector status transitions happen under the
// store lock, so concurrent occupy calls on the same connector cannot both win.
type Store struct {
	mu       sync.RWMutex
	order    []types.ID
	stations map[types.ID]*Station
}

// NewStore builds a store from seed stations. Iteration order over stations
// follows the seed order and stays stable for the lifetime of the store.
func NewStore(seed []Station) *Store {
	s := &Store{stations: make(map[types.ID]*Station, len(seed))}
	for i := range seed {
		st := seed[i]
		st.Connectors = append([]Connector(nil), seed[i].Connectors...)
		s.order = append(s.order, st.ID)
		s.stations[st.ID] = &st
	}
	return s
}

// Snapshot returns a copy of one station with its availability summary.
func (s *Store) Snapshot(id types.ID) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stations[id]
	if !ok {
		return Snapshot{}, ErrStationNotFound
	}
	return snapshotOf(st), nil
}

// Snapshots returns copies of every station in seed order.
func (s *Store) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, snapshotOf(s.stations[id]))
	}
	return out
}

// OccupyAny marks the first available connector of the station as occupied and
// returns a copy of it. Connector iteration order is the station's declared
// order, so the result is deterministic.
func (s *Store) OccupyAny(stationID types.ID) (Connector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[stationID]
	if !ok {
		return Connector{}, ErrStationNotFound
	}
	for i := range st.Connectors {
		if st.Connectors[i].Status == StatusAvailable {
			st.Connectors[i].Status = StatusOccupied
			return st.Connectors[i], nil
		}
	}
	return Connector{}, ErrNoConnectorAvailable
}

// Release marks the given connector available again. Releasing an already
// available connector is a no-op.
func (s *Store) Release(stationID, connectorID types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[stationID]
	if !ok {
		return ErrStationNotFound
	}
	for i := range st.Connectors {
		if st.Connectors[i].ID == connectorID {
			st.Connectors[i].Status = StatusAvailable
			return nil
		}
	}
	return ErrConnectorNotFound
}

func snapshotOf(st *Station) Snapshot {
	cp := *st
	cp.Connectors = append([]Connector(nil), st.Connectors...)

	snap := Snapshot{Station: cp, TotalConnectors: len(cp.Connectors)}
	for _, c := range cp.Connectors {
		if c.Status == StatusAvailable {
			snap.AvailableConnectors++
		}
	}
	snap.OccupiedConnectors = snap.TotalConnectors - snap.AvailableConnectors
	return snap
}
