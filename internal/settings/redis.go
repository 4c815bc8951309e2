package settings

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash the settings live in
const DefaultRedisKey = "holdem:settings"

// RedisStore keeps settings in a Redis hash, so several terminals can share them
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore creates a store on rdb. An empty key uses DefaultRedisKey.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Load reads the hash. A missing hash yields the defaults.
func (r *RedisStore) Load(ctx context.Context) (Settings, error) {
	values, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings from redis: %w", err)
	}
	return FromValues(values), nil
}

// Save writes every key of the hash
func (r *RedisStore) Save(ctx context.Context, s Settings) error {
	values := s.Values()
	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}
	if err := r.rdb.HSet(ctx, r.key, fields).Err(); err != nil {
		return fmt.Errorf("saving settings to redis: %w", err)
	}
	return nil
}
