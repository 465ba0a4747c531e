package ratelimit

import (
	"context"
	"strconv"
	"time"

	"remo-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLimiter 基于 Redis 有序集合的滑动窗口限流器
// 多实例部署共享计数；软限流，Redis 故障时放行而不是拒绝请求
type RedisLimiter struct {
	client    *redis.Client
	window    time.Duration
	max       int
	keyPrefix string

	now func() time.Time
}

// NewRedisLimiter 创建 Redis 限流器
func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		window:    window,
		max:       max,
		keyPrefix: "ratelimit:comment:",
		now:       time.Now,
	}
}

// Check 判定并记录一次请求
func (l *RedisLimiter) Check(ctx context.Context, key string) Result {
	now := l.now()
	redisKey := l.keyPrefix + key
	windowStart := now.Add(-l.window)

	// 先清理窗口外的成员再计数
	if err := l.client.ZRemRangeByScore(ctx, redisKey,
		"-inf", strconv.FormatInt(windowStart.UnixNano(), 10)).Err(); err != nil {
		return l.failOpen(err)
	}

	count, err := l.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return l.failOpen(err)
	}

	if count >= int64(l.max) {
		// 最早一条记录的时间决定重试间隔
		oldest, err := l.client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err != nil {
			return l.failOpen(err)
		}

		retryAfter := l.window
		if len(oldest) > 0 {
			oldestAt := time.Unix(0, int64(oldest[0].Score))
			retryAfter = oldestAt.Add(l.window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return Result{Allowed: false, RetryAfter: retryAfter}
	}

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return l.failOpen(err)
	}

	return Result{Allowed: true}
}

func (l *RedisLimiter) failOpen(err error) Result {
	logger.Warn("Rate limit check failed, allowing request", zap.Error(err))
	return Result{Allowed: true}
}
