package overrides

import (
	"context"
	"encoding/json"
	"log"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/redis/go-redis/v9"
)

// redisRepo stores overrides as JSON values in a single Redis hash
type redisRepo struct {
	client redis.UniversalClient
	key    string
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	Key    string
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	return &redisRepo{
		client: cfg.Client,
		key:    key,
	}
}

// Load returns every override in the hash. Fields that do not decode are
// logged and skipped so one bad patch cannot block startup.
func (r *redisRepo) Load(ctx context.Context) (map[string]any, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to load overrides from %s", r.key)
	}

	out := make(map[string]any, len(fields))
	for field, raw := range fields {
		value, err := decodeValue(raw)
		if err != nil {
			log.Printf("[OVERRIDES] Skipping %s: %v", field, err)
			continue
		}
		out[field] = value
	}
	return out, nil
}

// Get returns the override stored for key
func (r *redisRepo) Get(ctx context.Context, key string) (any, error) {
	if key == "" {
		return nil, battleerr.InvalidArgument("override key is required")
	}

	raw, err := r.client.HGet(ctx, r.key, key).Result()
	if err == redis.Nil {
		return nil, battleerr.NotFoundf("override for '%s' not found", key).
			WithMeta("key", key)
	}
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to get override %s", key)
	}

	value, err := decodeValue(raw)
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to decode override %s", key)
	}
	return value, nil
}

// Set stores an override for key
func (r *redisRepo) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return battleerr.InvalidArgument("override key is required")
	}
	if value == nil {
		return battleerr.InvalidArgument("override value cannot be nil")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return battleerr.Wrapf(err, "failed to encode override %s", key)
	}

	if err := r.client.HSet(ctx, r.key, key, string(data)).Err(); err != nil {
		return battleerr.Wrapf(err, "failed to set override %s", key)
	}
	return nil
}

// Delete removes the override for key
func (r *redisRepo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return battleerr.InvalidArgument("override key is required")
	}

	removed, err := r.client.HDel(ctx, r.key, key).Result()
	if err != nil {
		return battleerr.Wrapf(err, "failed to delete override %s", key)
	}
	if removed == 0 {
		return battleerr.NotFoundf("override for '%s' not found", key).
			WithMeta("key", key)
	}
	return nil
}

func decodeValue(raw string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return value, nil
}
