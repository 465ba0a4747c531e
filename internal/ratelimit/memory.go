package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter 进程内滑动窗口限流器
// 非持久化：进程重启后计数清零，多实例部署各算各的，需要共享计数时用 Redis 后端
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string][]time.Time

	// now 可注入，测试时替换为固定时钟
	now func() time.Time
}

// NewMemoryLimiter 创建进程内限流器
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// WithClock 替换时钟，测试用
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

// Check 判定并记录一次请求
func (l *MemoryLimiter) Check(_ context.Context, key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// 丢弃窗口外的记录
	timestamps := l.entries[key]
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		// 最早一条记录滑出窗口后才能重试
		retryAfter := kept[0].Add(l.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		l.entries[key] = kept
		return Result{Allowed: false, RetryAfter: retryAfter}
	}

	l.entries[key] = append(kept, now)
	return Result{Allowed: true}
}

// Cleanup 移除长时间不活跃的 key，防止 map 无限增长
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, timestamps := range l.entries {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(l.entries, key)
		}
	}
}

// StartCleanup 周期性清理，直到 ctx 取消
func (l *MemoryLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
