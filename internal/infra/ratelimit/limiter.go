package ratelimit

import (
	"context"
	"sync"
	"time"
)

// LimiterConfig token bucket 參數
type LimiterConfig struct {
	Prefix   string
	Capacity int
	RatePS   float64 // tokens/秒
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Prefix:   "ratelimit",
		Capacity: 5,
		RatePS:   0.2,
	}
}

// ILimiter 依 key 判斷是否放行
type ILimiter interface {
	Allow(ctx context.Context, key string) bool
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucket 單機版 token bucket，每個 key 各自計算
// 補充 token 在取用時依經過時間計算，不需要背景 goroutine
type TokenBucket struct {
	LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	t := &TokenBucket{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
	if config != nil {
		t.LimiterConfig = *config
	} else {
		t.LimiterConfig = GetDefaultLimiterConfig()
	}
	return t
}

func (t *TokenBucket) Allow(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(t.Capacity), b.tokens+elapsed*t.RatePS)
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
