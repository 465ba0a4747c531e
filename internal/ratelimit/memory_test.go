package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 5).WithClock(clock.Now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result := limiter.Check(ctx, "user-1")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		clock.Advance(time.Second)
	}

	// 窗口内第 6 次被拒绝
	result := limiter.Check(ctx, "user-1")
	assert.False(t, result.Allowed)
	assert.GreaterOrEqual(t, result.RetryAfterSeconds(), 0)
	assert.LessOrEqual(t, result.RetryAfter, 10*time.Second)
}

func TestMemoryLimiterRetryAfterMatchesOldestEntry(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 5).WithClock(clock.Now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Check(ctx, "user-1").Allowed)
	}

	// 4 秒后被拒，最早一条还要 6 秒才滑出窗口
	clock.Advance(4 * time.Second)
	result := limiter.Check(ctx, "user-1")
	require.False(t, result.Allowed)
	assert.Equal(t, 6*time.Second, result.RetryAfter)
}

func TestMemoryLimiterWindowSlides(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 5).WithClock(clock.Now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Check(ctx, "user-1").Allowed)
	}
	require.False(t, limiter.Check(ctx, "user-1").Allowed)

	// 窗口滑过后恢复放行
	clock.Advance(11 * time.Second)
	assert.True(t, limiter.Check(ctx, "user-1").Allowed)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 5).WithClock(clock.Now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Check(ctx, "user-1").Allowed)
	}
	require.False(t, limiter.Check(ctx, "user-1").Allowed)

	// 其他用户和 guest 桶不受影响
	assert.True(t, limiter.Check(ctx, "user-2").Allowed)
	assert.True(t, limiter.Check(ctx, "guest").Allowed)
}

func TestMemoryLimiterRetryAfterNeverNegative(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 1).WithClock(clock.Now)
	ctx := context.Background()

	require.True(t, limiter.Check(ctx, "user-1").Allowed)

	// 正好在窗口边界上，等待时间取 0 而不是负数
	clock.Advance(10 * time.Second)
	result := limiter.Check(ctx, "user-1")
	if !result.Allowed {
		assert.GreaterOrEqual(t, result.RetryAfterSeconds(), 0)
	}
}

func TestMemoryLimiterConcurrentBurst(t *testing.T) {
	limiter := NewMemoryLimiter(10*time.Second, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	// 同一 key 并发打满，放行数不能超过上限
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check(ctx, "user-1").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestMemoryLimiterCleanupDropsStaleKeys(t *testing.T) {
	clock := newFakeClock()
	limiter := NewMemoryLimiter(10*time.Second, 5).WithClock(clock.Now)
	ctx := context.Background()

	require.True(t, limiter.Check(ctx, "user-1").Allowed)
	require.True(t, limiter.Check(ctx, "user-2").Allowed)

	clock.Advance(time.Minute)
	limiter.Cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.entries)
}

func TestResultMessage(t *testing.T) {
	denied := Result{Allowed: false, RetryAfter: 7 * time.Second}
	assert.Equal(t, "Rate limit exceeded. Please wait 7 seconds before posting again.", denied.Message())

	immediate := Result{Allowed: false, RetryAfter: 500 * time.Millisecond}
	assert.Equal(t, "Rate limit exceeded. Please wait a moment before posting again.", immediate.Message())
}
