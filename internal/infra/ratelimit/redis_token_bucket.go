package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient 執行 Lua 腳本所需的介面，*redis.Client 與 miniredis 測試皆可使用
type RedisClient = redis.Scripter

// 以 Lua 保證讀取與扣減是原子操作，多個 instance 共用同一個 bucket
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = (now - lastRefill) / 1000
	currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', tostring(currentTokens), 'last_refill', tostring(now))
	local ttl = math.ceil(capacity / math.max(rate, 0.001)) + 1
	redis.call('EXPIRE', key, ttl)

	return allowed
`)

// RsTokenBucket Redis 版 token bucket，Redis 無法使用時改用單機 fallback
type RsTokenBucket struct {
	LimiterConfig
	client   RedisClient
	fallback ILimiter
	now      func() time.Time
}

func NewRsTokenBucket(client RedisClient, config *LimiterConfig) *RsTokenBucket {
	rb := &RsTokenBucket{
		client: client,
		now:    time.Now,
	}
	if config != nil {
		rb.LimiterConfig = *config
	} else {
		rb.LimiterConfig = GetDefaultLimiterConfig()
	}
	rb.fallback = NewTokenBucket(&rb.LimiterConfig)
	return rb
}

func (r *RsTokenBucket) Allow(ctx context.Context, key string) bool {
	result, err := tokenBucketScript.Run(
		ctx,
		r.client,
		[]string{fmt.Sprintf("%s:%s", r.Prefix, key)},
		r.Capacity,
		r.RatePS,
		r.now().UnixMilli(),
	).Int64()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limiter unavailable, using local bucket")
		return r.fallback.Allow(ctx, key)
	}
	return result == 1
}

var (
	_ ILimiter = (*TokenBucket)(nil)
	_ ILimiter = (*RsTokenBucket)(nil)
)
