package toggle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// reactionWindow is the trailing window the reaction budget covers
const reactionWindow = 24 * time.Hour

// RedisReactionLimiter counts reaction toggles-to-"on" per actor in Redis
// with a 24h expiry. Redis being unreachable fails open: the limit bounds
// abuse, it must never take reactions down with it.
type RedisReactionLimiter struct {
	client *redis.Client
	limit  int
	log    *zap.Logger
}

// NewRedisReactionLimiter creates a new RedisReactionLimiter
func NewRedisReactionLimiter(client *redis.Client, limit int, log *zap.Logger) *RedisReactionLimiter {
	return &RedisReactionLimiter{client: client, limit: limit, log: log}
}

func (l *RedisReactionLimiter) key(actorID uint) string {
	return fmt.Sprintf("ratelimit:reactions:%d", actorID)
}

// Allow reports whether the actor is still under budget
func (l *RedisReactionLimiter) Allow(ctx context.Context, actorID uint) bool {
	n, err := l.client.Get(ctx, l.key(actorID)).Int64()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		l.log.Warn("reaction limiter read failed, allowing", zap.Error(err))
		return true
	}
	return n < int64(l.limit)
}

// Record counts one toggle-to-"on", starting the window on the first one
func (l *RedisReactionLimiter) Record(ctx context.Context, actorID uint) {
	key := l.key(actorID)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn("reaction limiter write failed", zap.Error(err))
		return
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, reactionWindow).Err(); err != nil {
			l.log.Warn("reaction limiter expire failed", zap.Error(err))
		}
	}
}
