package redisclient

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/cart"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetCache retrieves a cached payload. ok=false means a cache miss.
func (c *Client) GetCache(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	return raw, true, nil
}

// SetCache stores a payload under key with a TTL.
func (c *Client) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, cacheKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// InvalidateCache drops a cached payload.
func (c *Client) InvalidateCache(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, cacheKey(key)).Err()
}

func cacheKey(key string) string {
	return fmt.Sprintf("cache:%s", key)
}

// CartStore adapts the Redis client to the cart persistence interface. The
// snapshot lives under the cart's fixed storage key with no expiry.
type CartStore struct {
	rdb *redis.Client
}

// NewCartStore creates a Redis-backed cart store.
func (c *Client) NewCartStore() *CartStore {
	return &CartStore{rdb: c.rdb}
}

var _ cart.Store = (*CartStore)(nil)

func (s *CartStore) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, cart.StorageKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cart load failed: %w", err)
	}
	return raw, true, nil
}

func (s *CartStore) Save(ctx context.Context, data []byte) error {
	if err := s.rdb.Set(ctx, cart.StorageKey, data, 0).Err(); err != nil {
		return fmt.Errorf("cart save failed: %w", err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, cart.StorageKey).Err()
}
