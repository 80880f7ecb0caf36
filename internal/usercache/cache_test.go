package usercache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpeers/tplbot/internal/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestCacheRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := New(client, time.Minute)
	ctx := context.Background()

	stored := &domain.User{
		ID:         7,
		TelegramID: 100,
		FirstName:  "Ada",
		Username:   "ada",
	}
	require.NoError(t, cache.Set(ctx, stored))

	got, err := cache.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.TelegramID, got.TelegramID)
	assert.Equal(t, stored.Username, got.Username)
}

func TestCacheMissReturnsNil(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := New(client, time.Minute)

	got, err := cache.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheEntriesExpire(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := New(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{TelegramID: 100}))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheInvalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := New(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{TelegramID: 100}))
	require.NoError(t, cache.Invalidate(ctx, 100))

	got, err := cache.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheConnectionFailure(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := New(client, time.Minute)
	mr.Close()

	_, err := cache.Get(context.Background(), 100)
	assert.Error(t, err)
}
