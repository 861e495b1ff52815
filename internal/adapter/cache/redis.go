// Package cache implements the recently-used question memory. It is a soft
// anti-repetition hint: losing entries on restart or under failure only risks
// an occasional repeated question.
package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

const usedKeyPrefix = "interview:question:used:"

// RedisUsageCache backs the usage memory with Redis so multiple server
// replicas share it. Every Redis failure degrades to "not used".
type RedisUsageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisUsageCache constructs a RedisUsageCache with the given TTL.
func NewRedisUsageCache(client *redis.Client, ttl time.Duration) *RedisUsageCache {
	return &RedisUsageCache{client: client, ttl: ttl}
}

func (c *RedisUsageCache) WasRecentlyUsed(ctx domain.Context, questionID string) bool {
	n, err := c.client.Exists(ctx, usedKeyPrefix+questionID).Result()
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("usage cache read failed",
			"question_id", questionID, "error", err)
		return false
	}
	return n > 0
}

func (c *RedisUsageCache) MarkUsed(ctx domain.Context, questionID string) {
	if err := c.client.Set(ctx, usedKeyPrefix+questionID, "1", c.ttl).Err(); err != nil {
		observability.LoggerFromContext(ctx).Warn("usage cache write failed",
			"question_id", questionID, "error", err)
	}
}
