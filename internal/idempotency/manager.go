// Package idempotency suppresses duplicate Telegram updates so every
// handler runs at most once per update key.
package idempotency

import (
	"context"
	"time"
)

// Manager decides whether an update key has been processed before.
type Manager interface {
	// FirstSeen returns true exactly once per key within the ttl
	// window; duplicate deliveries of the same update return false.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
