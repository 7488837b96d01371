package anchor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gridpass/internal/types"
)

const (
	anchorKeyPrefix = "anchor:session:"
	anchorIndexKey  = "anchor:sessions"
)

// RedisStore persists anchors in Redis so they survive process restarts.
// Records are stored as JSON under per-session keys with a list index for
// enumeration.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode anchor record: %w", err)
	}

	key := anchorKeyPrefix + string(rec.SessionID)
	existed, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis exists: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if existed == 0 {
		if err := s.client.RPush(ctx, anchorIndexKey, string(rec.SessionID)).Err(); err != nil {
			return fmt.Errorf("redis rpush: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID types.ID) (*Record, error) {
	raw, err := s.client.Get(ctx, anchorKeyPrefix+string(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode anchor record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	ids, err := s.client.LRange(ctx, anchorIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, types.ID(id))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}
