package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "inflight:"

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRegistry shares tokens between server instances.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) Acquire(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+key, token, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire %s: %w", key, err)
	}
	if !ok {
		return "", ErrInFlight
	}
	return token, nil
}

func (r *RedisRegistry) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{redisKeyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}
