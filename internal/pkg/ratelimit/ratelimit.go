package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports the outcome of a single rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter is a fixed-window request counter keyed by a client identifier.
// Implementations are best-effort throttles, not billing-grade accounting.
type Limiter interface {
	Check(ctx context.Context, key string) (Result, error)
}

type memoryLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	counts map[string]*windowEntry
}

type windowEntry struct {
	count int
	reset time.Time
}

// NewMemory builds an in-process fixed-window limiter. Counters are guarded by
// a mutex since handlers run on parallel goroutines; state does not survive a
// restart and is not shared across instances.
func NewMemory(window time.Duration, max int) Limiter {
	return &memoryLimiter{
		window: window,
		max:    max,
		counts: make(map[string]*windowEntry),
	}
}

func (l *memoryLimiter) Check(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.counts[key]
	if !ok || now.After(e.reset) {
		e = &windowEntry{reset: now.Add(l.window)}
		l.counts[key] = e
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetTime: e.reset}, nil
	}
	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count, ResetTime: e.reset}, nil
}

type redisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
}

// NewRedis builds a fixed-window limiter on Redis INCR + EXPIRE, shared across
// horizontally scaled instances.
func NewRedis(rdb *redis.Client, window time.Duration, max int) Limiter {
	return &redisLimiter{rdb: rdb, window: window, max: max}
}

func (l *redisLimiter) Check(ctx context.Context, key string) (Result, error) {
	rkey := "ratelimit:" + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, rkey)
	pipe.ExpireNX(ctx, rkey, l.window)
	ttl := pipe.TTL(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := int(incr.Val())
	reset := time.Now().Add(ttl.Val())
	if count > l.max {
		return Result{Allowed: false, Remaining: 0, ResetTime: reset}, nil
	}
	return Result{Allowed: true, Remaining: l.max - count, ResetTime: reset}, nil
}
