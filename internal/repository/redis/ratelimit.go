package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	formLimitPrefix = "ratelimit:public-form:"
	formLimitWindow = time.Minute
)

// FormLimiter caps public contact and booking submissions per client IP.
// Each IP gets requestsPerMinute+burst submissions per calendar minute; the
// counter key carries the window start so a window never outlives its reset.
type FormLimiter struct {
	client    *Client
	allowance int64
	now       func() time.Time
}

// NewFormLimiter creates a per-IP limiter for the public form endpoints
func NewFormLimiter(client *Client, requestsPerMinute, burst int) *FormLimiter {
	return &FormLimiter{
		client:    client,
		allowance: int64(requestsPerMinute + burst),
		now:       time.Now,
	}
}

// Limit is the number of submissions one IP may make per window
func (l *FormLimiter) Limit() int {
	return int(l.allowance)
}

// Allow counts one submission from ip.
// Returns (allowed, remaining, windowEnd, error)
func (l *FormLimiter) Allow(ctx context.Context, ip string) (bool, int, time.Time, error) {
	start := l.now().Truncate(formLimitWindow)
	end := start.Add(formLimitWindow)
	key := formWindowKey(ip, start)

	pipe := l.client.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireAt(ctx, key, end)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, fmt.Errorf("count submission for %s: %w", ip, err)
	}

	count := incr.Val()
	return count <= l.allowance, remainingSubmissions(l.allowance, count), end, nil
}

// Reset clears the current window for ip
func (l *FormLimiter) Reset(ctx context.Context, ip string) error {
	return l.client.rdb.Del(ctx, formWindowKey(ip, l.now().Truncate(formLimitWindow))).Err()
}

func formWindowKey(ip string, windowStart time.Time) string {
	return fmt.Sprintf("%s%s:%d", formLimitPrefix, ip, windowStart.Unix())
}

func remainingSubmissions(allowance, count int64) int {
	if count >= allowance {
		return 0
	}
	return int(allowance - count)
}
