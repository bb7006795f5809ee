package window

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medmcp/internal/ratelimit/models"
)

const keyPrefix = "medmcp:ratelimit:"

// admitScript runs purge, count and append atomically on the server.
// Returns {allowed, count_after, oldest_ms}.
var admitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count < limit then
  redis.call('ZADD', key, now, member)
  redis.call('PEXPIRE', key, window)
  local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  return {1, count + 1, tonumber(first[2])}
end
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if oldest[2] == nil then
  return {0, count, now}
end
return {0, count, tonumber(oldest[2])}
`)

// RedisStore keeps windows as sorted sets so several server replicas share
// one quota per client. Keys expire on their own once idle.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.Decision, error) {
	nowMs := now.UnixMilli()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	res, err := admitScript.Run(ctx, s.client, []string{keyPrefix + key},
		nowMs, window.Milliseconds(), limit, member).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis admit: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("redis admit: unexpected reply length %d", len(res))
	}

	oldest := time.UnixMilli(res[2]).UTC()
	if res[0] == 1 {
		return &models.Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - int(res[1]),
			ResetAt:   oldest.Add(window),
		}, nil
	}
	return &models.Decision{
		Allowed:    false,
		Limit:      limit,
		ResetAt:    oldest.Add(window),
		RetryAfter: window - now.Sub(oldest),
	}, nil
}

func (s *RedisStore) Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	cutoff := now.Add(-window).UnixMilli()
	n, err := s.client.ZCount(ctx, keyPrefix+key, "("+strconv.FormatInt(cutoff, 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("redis count: %w", err)
	}
	return int(n), nil
}
