package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"passprove/internal/ratelimit/models"
)

// RedisBucketStore keeps each sliding window in a sorted set scored by
// request time in microseconds.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

// slidingWindowScript trims the window, then admits the request if there is
// room. Returns {allowed, count, oldest score}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, member)
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, math.ceil(window / 1000))
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = ARGV[1]
if oldest[2] then
  oldestScore = oldest[2]
end
return {allowed, count, oldestScore}
`)

// Allow records one request against key if the window has room.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	raw, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		now.UnixMicro(),
		window.Microseconds(),
		limit,
		uuid.NewString(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("run sliding window script: %w", err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("unexpected sliding window reply of length %d", len(raw))
	}

	allowed, _ := raw[0].(int64)
	count, _ := raw[1].(int64)
	oldestStr, _ := raw[2].(string)
	oldest, err := strconv.ParseFloat(oldestStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse oldest score: %w", err)
	}
	resetAt := time.UnixMicro(int64(oldest)).Add(window)

	result := &models.RateLimitResult{
		Allowed:   allowed == 1,
		Limit:     limit,
		Remaining: max(limit-int(count), 0),
		ResetAt:   resetAt,
	}
	if !result.Allowed {
		result.RetryAfter = retryAfter(now, resetAt)
	}
	return result, nil
}

// Reset clears the window for key.
func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
