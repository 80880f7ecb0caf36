package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "update:seen:"

// RedisManager tracks processed update keys in Redis with a TTL, so
// the dedupe window survives restarts and is shared between replicas.
type RedisManager struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisManager creates a Redis-backed Manager.
func NewRedisManager(client *redis.Client, log *slog.Logger) *RedisManager {
	if log == nil {
		log = slog.Default()
	}

	return &RedisManager{
		client: client,
		log:    log,
	}
}

// FirstSeen marks the key as seen and reports whether this was the
// first sighting within the ttl window.
func (m *RedisManager) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := m.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
	if err != nil {
		m.log.Error("failed to record update key", slog.String("key", key), slog.Any("error", err))
		return false, fmt.Errorf("setnx update key: %w", err)
	}

	return first, nil
}
