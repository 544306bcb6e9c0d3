package seclevel

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "seclevel:"

// RedisCache shares resolved levels across processes. Entries carry a TTL
// as a safety net; explicit Clear remains the authoritative invalidation.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *slog.Logger
}

// NewRedisCache creates a Redis-backed level cache. A zero ttl stores
// entries without expiry.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *RedisCache {
	if client == nil {
		panic("seclevel: redis client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, userID string) (Level, bool) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "level cache read failed", "user", userID, "error", err)
		}
		return Level{}, false
	}

	var level Level
	if err := json.Unmarshal(payload, &level); err != nil {
		c.log.WarnContext(ctx, "level cache entry corrupt", "user", userID, "error", err)
		return Level{}, false
	}
	return level, true
}

func (c *RedisCache) Set(ctx context.Context, userID string, level Level) {
	payload, err := json.Marshal(level)
	if err != nil {
		c.log.WarnContext(ctx, "level cache encode failed", "user", userID, "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+userID, payload, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "level cache write failed", "user", userID, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		c.log.WarnContext(ctx, "level cache delete failed", "user", userID, "error", err)
	}
}

// Clear removes every cached level by scanning the key prefix.
func (c *RedisCache) Clear(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			c.log.WarnContext(ctx, "level cache clear failed", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.log.WarnContext(ctx, "level cache delete failed", "error", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
