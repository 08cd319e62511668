package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepo is the token denylist: a key exists only while the revoked
// token would otherwise still be valid, after that Redis expires it away.
type RedisTokenRepo struct {
	client *redis.Client
}

func NewRedisTokenRepo(client *redis.Client) *RedisTokenRepo {
	return &RedisTokenRepo{
		client: client,
	}
}

func (r *RedisTokenRepo) Revoke(ctx context.Context, key string, exp time.Time) error {
	return r.client.Set(ctx, "revoked:"+key, 1, safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) IsRevoked(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, "revoked:"+key).Result()
	if err != nil {
		// fail closed: an unreachable denylist counts as revoked
		return true, err
	}
	return n > 0, nil
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// minimal TTL so the key still disappears
		return time.Minute
	}
	return ttl
}
