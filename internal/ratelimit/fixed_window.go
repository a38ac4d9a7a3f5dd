// Package ratelimit counts requests per identifier in fixed windows stored in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time left in the current window.
	RetryAfter time.Duration
}

type FixedWindow struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

func NewFixedWindow(client redis.Cmdable, prefix string, limit int, window time.Duration) (*FixedWindow, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit[%d] must be positive", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("window[%s] must be positive", window)
	}

	return &FixedWindow{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}, nil
}

// Allow counts one request of identifier. The window starts with the first request.
func (l *FixedWindow) Allow(ctx context.Context, identifier string) (Result, error) {
	key := l.key(identifier)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pttl := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("pipe.Exec: %w", err)
	}

	count := int(incr.Val())
	ttl := pttl.Val()

	// -1: the key has no expiry yet, this request opened the window
	if ttl < 0 {
		if err := l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("client.PExpire: %w", err)
		}
		ttl = l.window
	}

	return Result{
		Allowed:    count <= l.limit,
		Limit:      l.limit,
		Remaining:  max(l.limit-count, 0),
		RetryAfter: ttl,
	}, nil
}

func (l *FixedWindow) key(identifier string) string {
	return fmt.Sprintf("%s:%s", l.prefix, identifier)
}
