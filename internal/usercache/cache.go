// Package usercache keeps resolved user records in Redis so routine
// updates do not hit Postgres for every sender lookup.
package usercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/lnpeers/tplbot/internal/domain"
)

const defaultTTL = 15 * time.Minute

// Cache stores user records keyed by Telegram ID with a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a user cache over the provided Redis client. A
// non-positive ttl falls back to a 15 minute default.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached record for a Telegram ID, or nil on a miss.
func (c *Cache) Get(ctx context.Context, telegramID int64) (*domain.User, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, cacheKey(telegramID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}

	return &user, nil
}

// Set stores the user record under its Telegram ID.
func (c *Cache) Set(ctx context.Context, user *domain.User) error {
	if c == nil || c.client == nil || user == nil {
		return nil
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(user.TelegramID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached user: %w", err)
	}

	return nil
}

// Invalidate drops the cached record for a Telegram ID.
func (c *Cache) Invalidate(ctx context.Context, telegramID int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, cacheKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("delete cached user: %w", err)
	}

	return nil
}

func cacheKey(telegramID int64) string {
	return fmt.Sprintf("user:profile:%d", telegramID)
}
