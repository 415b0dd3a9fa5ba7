package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is a fixed-window counter shared by every instance pointed at the
// same Redis.
type Counter interface {
	// Incr bumps key and returns the new count. The key expires window after
	// its first increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

type redisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter connects to Redis and returns a Counter whose keys are
// namespaced under prefix. redisURL may be a redis:// URL or a bare host:port.
func NewRedisCounter(ctx context.Context, redisURL, prefix string) (Counter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCounter{client: client, prefix: prefix}, nil
}

func (r *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := r.prefix + key
	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (r *redisCounter) Close() error {
	return r.client.Close()
}
