// README: Session lifecycle service (occupy connector, price, anchor, release).
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gridpass/internal/modules/anchor"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/types"
)

type Service struct {
	store    *Store
	registry *registry.Store
	pricing  *pricing.Service
	anchors  anchor.Store
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(
	store *Store,
	reg *registry.Store,
	price *pricing.Service,
	anchors anchor.Store,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:    store,
		registry: reg,
		pricing:  price,
		anchors:  anchors,
		log:      log,
		now:      time.Now,
	}
}

// Start occupies the first available connector at the station, prices the
// session, and anchors the priced record. Anchoring failures are logged but
// do not fail the start: the session is already live on the connector.
func (s *Service) Start(ctx context.Context, stationID, vin types.ID) (*Session, error) {
	snapshot, err := s.registry.Snapshot(stationID)
	if err != nil {
		return nil, err
	}

	connector, err := s.registry.OccupyAny(stationID)
	if err != nil {
		return nil, err
	}

	cost := s.pricing.Estimate(ctx, pricing.EstimateParams{
		VIN:      vin,
		Station:  snapshot,
		Reserved: &connector,
	})

	sess := Session{
		ID:          types.ID(uuid.NewString()),
		StationID:   stationID,
		StationName: snapshot.Name,
		ConnectorID: connector.ID,
		VIN:         vin,
		State:       StateActive,
		StartedAt:   s.now().UTC(),
		EnergyKwh:   cost.EnergyKwh,
		CostEur:     cost.TotalEur,
		Pricing:     cost,
	}
	s.store.Create(sess)

	rec, err := anchor.NewRecord(sess.ID, sess, sess.StartedAt)
	if err == nil {
		err = s.anchors.Put(ctx, rec)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", string(sess.ID)).Msg("failed to anchor session")
	}

	s.log.Info().
		Str("session_id", string(sess.ID)).
		Str("station_id", string(stationID)).
		Str("connector_id", string(connector.ID)).
		Float64("total_eur", cost.TotalEur).
		Msg("session started")
	return &sess, nil
}

// Stop completes a session and releases its connector. Stopping an already
// completed session is an error; the connector release is idempotent.
func (s *Service) Stop(ctx context.Context, id types.ID) (*Session, error) {
	var stopped Session
	err := s.store.Update(id, func(sess *Session) error {
		if sess.State != StateActive {
			return ErrSessionEnded
		}
		endedAt := s.now().UTC()
		sess.State = StateCompleted
		sess.EndedAt = &endedAt
		stopped = *sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.registry.Release(stopped.StationID, stopped.ConnectorID); err != nil {
		s.log.Warn().Err(err).
			Str("session_id", string(id)).
			Str("connector_id", string(stopped.ConnectorID)).
			Msg("failed to release connector")
	}

	s.log.Info().Str("session_id", string(id)).Msg("session stopped")
	return &stopped, nil
}

// Get returns one session by id.
func (s *Service) Get(id types.ID) (*Session, error) {
	return s.store.Get(id)
}

// List returns recent sessions, newest first.
func (s *Service) List(limit int) []Session {
	return s.store.List(limit)
}

// Active returns the most recent in-progress session.
func (s *Service) Active() (*Session, error) {
	return s.store.Active()
}

// Anchor returns the trust anchor stored for a session.
func (s *Service) Anchor(ctx context.Context, id types.ID) (*anchor.Record, error) {
	if _, err := s.store.Get(id); err != nil {
		return nil, err
	}
	return s.anchors.Get(ctx, id)
}

// Anchors lists every anchor record known to the store.
func (s *Service) Anchors(ctx context.Context) ([]anchor.Record, error) {
	return s.anchors.List(ctx)
}
