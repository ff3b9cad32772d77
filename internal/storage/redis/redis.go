package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Cache wraps a redis client with JSON values and counters.
type Cache struct {
	client  *redis.Client
	listTTL time.Duration
	logger  *zap.Logger
}

func New(addr, password string, db int, listTTL time.Duration, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}

	logger.Info("successfully connected to Redis",
		zap.String("addr", addr),
		zap.Duration("list_ttl", listTTL),
	)

	return &Cache{client: client, listTTL: listTTL, logger: logger}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Set stores value as JSON under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return c.fail("set cache", key, err)
	}
	return nil
}

// Get decodes the JSON stored under key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return c.fail("get cache", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal cache value: %w", err)
	}
	return nil
}

func (c *Cache) Increment(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, c.fail("increment", key, err)
	}
	return n, nil
}

// IncrementWithExpiry counts within a fixed window: the TTL is set only
// when the counter is created.
func (c *Cache) IncrementWithExpiry(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, c.fail("increment with expiry", key, err)
	}
	return incr.Val(), nil
}

// GetInt reads a counter; a missing key reads as zero.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, key).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, c.fail("get int", key, err)
	}
	return n, nil
}

func (c *Cache) fail(action, key string, err error) error {
	c.logger.Error("failed to "+action,
		zap.String("key", key),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", action, err)
}
