package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter enforces fixed-window request quotas per client, one short window
// and one long, backed by redis so limits hold across replicas. A nil redis
// client disables enforcement.
type Limiter struct {
	client    *redis.Client
	perSecond int
	perMinute int
	logger    *slog.Logger
}

func New(client *redis.Client, perSecond, perMinute int, logger *slog.Logger) *Limiter {
	return &Limiter{client: client, perSecond: perSecond, perMinute: perMinute, logger: logger}
}

// Allow reports whether the client identified by key may proceed. On redis
// errors the request is allowed; availability wins over strict limiting.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil {
		return true
	}

	now := time.Now()
	if !l.window(ctx, fmt.Sprintf("rl:%s:s:%d", key, now.Unix()), l.perSecond, 2*time.Second) {
		return false
	}
	return l.window(ctx, fmt.Sprintf("rl:%s:m:%d", key, now.Unix()/60), l.perMinute, 2*time.Minute)
}

func (l *Limiter) window(ctx context.Context, key string, limit int, ttl time.Duration) bool {
	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limit check failed", "key", key, "error", err)
		return true
	}
	return count.Val() <= int64(limit)
}
