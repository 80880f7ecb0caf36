package user

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpeers/tplbot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRepo struct {
	users   map[int64]*domain.User
	created []*domain.User
	finds   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeRepo) FindByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	r.finds++
	if u, ok := r.users[telegramID]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = int64(len(r.created) + 1)
	r.users[u.TelegramID] = u
	r.created = append(r.created, u)
	return nil
}

func (r *fakeRepo) UpdateLastActive(_ context.Context, _ int64) error {
	return nil
}

type fakeCache struct {
	entries map[int64]*domain.User
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]*domain.User)}
}

func (c *fakeCache) Get(_ context.Context, telegramID int64) (*domain.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[telegramID], nil
}

func (c *fakeCache) Set(_ context.Context, u *domain.User) error {
	c.sets++
	c.entries[u.TelegramID] = u
	return nil
}

func TestEnsureCreatesOnFirstContact(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, testLogger())

	u, err := svc.Ensure(context.Background(), 100, "Ada", "L", "ada")
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.TelegramID)
	assert.Len(t, repo.created, 1)

	again, err := svc.Ensure(context.Background(), 100, "Ada", "L", "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, repo.created, 1)
}

func TestEnsureCacheHitSkipsRepository(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	cache.entries[100] = &domain.User{ID: 7, TelegramID: 100}
	svc := NewService(repo, cache, testLogger())

	u, err := svc.Ensure(context.Background(), 100, "Ada", "L", "ada")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Zero(t, repo.finds)
}

func TestEnsurePopulatesCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, testLogger())

	u, err := svc.Ensure(context.Background(), 100, "Ada", "L", "ada")
	require.NoError(t, err)
	require.NotNil(t, cache.entries[100])
	assert.Equal(t, u.ID, cache.entries[100].ID)
	assert.Equal(t, 1, cache.sets)
}

func TestEnsureCacheFailureFallsThrough(t *testing.T) {
	repo := newFakeRepo()
	repo.users[100] = &domain.User{ID: 7, TelegramID: 100}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(repo, cache, testLogger())

	u, err := svc.Ensure(context.Background(), 100, "Ada", "L", "ada")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, 1, repo.finds)
}
