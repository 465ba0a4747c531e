package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Result 限流判定结果
type Result struct {
	Allowed bool
	// RetryAfter 被拒绝时距离最早一条记录滑出窗口的剩余时间，不为负
	RetryAfter time.Duration
}

// RetryAfterSeconds 取整后的等待秒数，最小为 0
func (r Result) RetryAfterSeconds() int {
	if r.RetryAfter <= 0 {
		return 0
	}
	return int(r.RetryAfter.Round(time.Second) / time.Second)
}

// Message 面向用户的限流提示
func (r Result) Message() string {
	seconds := r.RetryAfterSeconds()
	if seconds <= 1 {
		return "Rate limit exceeded. Please wait a moment before posting again."
	}
	return fmt.Sprintf("Rate limit exceeded. Please wait %d seconds before posting again.", seconds)
}

// Limiter 滑动窗口限流器
// key 为已认证用户 ID 或游客共享的 guest 桶，只在评论创建时检查
type Limiter interface {
	// Check 判定并记录一次请求：窗口内已有 max 条记录则拒绝，否则记录当前时间并放行
	Check(ctx context.Context, key string) Result
}
