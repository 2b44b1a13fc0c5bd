package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "saylorscope:quota:"

// RedisStore is a CounterStore backed by Redis, for deployments where several
// instances must share one quota. Each token maps to a hash holding the count
// and the window anchor in unix milliseconds.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store talking to the Redis server at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

func (r *RedisStore) Get(ctx context.Context, token string) (WindowState, bool, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		return WindowState{}, false, err
	}
	if len(fields) == 0 {
		return WindowState{}, false, nil
	}
	return parseWindow(fields)
}

func (r *RedisStore) Increment(ctx context.Context, token string, start time.Time) (WindowState, error) {
	key := redisKeyPrefix + token

	pipe := r.client.TxPipeline()
	pipe.HSetNX(ctx, key, "start", start.UnixMilli())
	incr := pipe.HIncrBy(ctx, key, "count", 1)
	anchor := pipe.HGet(ctx, key, "start")
	if _, err := pipe.Exec(ctx); err != nil {
		return WindowState{}, err
	}

	millis, err := strconv.ParseInt(anchor.Val(), 10, 64)
	if err != nil {
		return WindowState{}, err
	}
	return WindowState{
		Count:       int(incr.Val()),
		WindowStart: time.UnixMilli(millis),
	}, nil
}

func (r *RedisStore) Reset(ctx context.Context, token string) error {
	return r.client.Del(ctx, redisKeyPrefix+token).Err()
}

func parseWindow(fields map[string]string) (WindowState, bool, error) {
	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return WindowState{}, false, err
	}
	millis, err := strconv.ParseInt(fields["start"], 10, 64)
	if err != nil {
		return WindowState{}, false, err
	}
	return WindowState{Count: count, WindowStart: time.UnixMilli(millis)}, true, nil
}
