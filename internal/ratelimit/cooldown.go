package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResendWindow is how long a channel stays throttled after a resend.
const ResendWindow = 60 * time.Second

// Cooldown gates resend attempts per account and channel.
type Cooldown interface {
	// Allow reserves the slot for key and reports whether it was free.
	Allow(ctx context.Context, key string) (bool, error)

	// Release frees a reserved slot, so a resend whose delivery failed
	// does not burn the window.
	Release(ctx context.Context, key string) error
}

func NewRedis(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

type RedisCooldown struct {
	rdb    *redis.Client
	window time.Duration
}

func NewRedisCooldown(rdb *redis.Client, window time.Duration) *RedisCooldown {
	return &RedisCooldown{rdb: rdb, window: window}
}

func (c *RedisCooldown) Allow(ctx context.Context, key string) (bool, error) {
	return c.rdb.SetNX(ctx, "resend:"+key, 1, c.window).Result()
}

func (c *RedisCooldown) Release(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, "resend:"+key).Err()
}

// MemoryCooldown backs tests and single-node setups.
type MemoryCooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func NewMemoryCooldown(window time.Duration) *MemoryCooldown {
	return &MemoryCooldown{
		window: window,
		last:   map[string]time.Time{},
	}
}

func (c *MemoryCooldown) Allow(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if at, ok := c.last[key]; ok && now.Sub(at) < c.window {
		return false, nil
	}
	c.last[key] = now
	return true, nil
}

func (c *MemoryCooldown) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.last, key)
	return nil
}
