package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"otsus/internal/decision"
)

const redisKeyPrefix = "otsus:decisions:"

// RedisStore keeps a TTL-bounded trail of recent decisions per code hash.
// Each write refreshes the key's expiry, so the trail retains the last
// retention window of activity and then disappears on its own. Meant for
// deployments that want a short-lived operational trail without a database.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) Save(ctx context.Context, record decision.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal decision record: %w", err)
	}

	key := redisKeyPrefix + record.CodeHash
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save decision record: %w", err)
	}
	return nil
}

func (s *RedisStore) ListByCodeHash(ctx context.Context, codeHash string) ([]decision.Record, error) {
	values, err := s.client.LRange(ctx, redisKeyPrefix+codeHash, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list decision records: %w", err)
	}

	var out []decision.Record
	for _, v := range values {
		var r decision.Record
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("unmarshal decision record: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
