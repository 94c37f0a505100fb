package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds redis configuration
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Client wraps the redis client. When disabled every operation is a
// no-op miss so callers degrade to the database without branching.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// ErrCacheMiss is returned when a key is absent or caching is disabled.
var ErrCacheMiss = fmt.Errorf("cache miss")

// NewClient creates a redis client. A disabled config returns a usable
// client that never caches.
func NewClient(config Config) (*Client, error) {
	if !config.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, enabled: true}, nil
}

// Enabled reports whether caching is active.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Get retrieves a raw value by key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if !c.enabled {
		return "", ErrCacheMiss
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a raw value with a TTL.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled || len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// GetJSON retrieves a key and unmarshals it into dest.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("redis unmarshal %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals value and stores it with a TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis marshal %s: %w", key, err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Ping verifies connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close shuts down the client.
func (c *Client) Close() error {
	if !c.enabled || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
