package overrides

import (
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the hash that holds every override
const DefaultKey = "effects:overrides"

// NewRedis creates a new Redis-backed override repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
		Key:    DefaultKey,
	})
}
