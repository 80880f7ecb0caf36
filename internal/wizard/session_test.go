package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lnpeers/tplbot/internal/domain"
)

func TestStateChain(t *testing.T) {
	order := []State{StateList, StateListInput}
	for i := 0; i < len(order)-1; i++ {
		next, ok := order[i].next()
		assert.True(t, ok)
		assert.Equal(t, order[i+1], next)
	}

	creation := []State{StateCreateInit, StateType, StateCurrency, StateAmount, StateMargin, StateMethod}
	for i := 0; i < len(creation)-1; i++ {
		next, ok := creation[i].next()
		assert.True(t, ok)
		assert.Equal(t, creation[i+1], next)
	}

	// terminal states have no successor
	_, ok := StateListInput.next()
	assert.False(t, ok)
	_, ok = StateMethod.next()
	assert.False(t, ok)
}

func TestStoreSweepEvictsStaleSessions(t *testing.T) {
	store := NewStore()

	fresh := &Session{User: &domain.User{TelegramID: 1}, UpdatedAt: time.Now().UTC()}
	stale := &Session{User: &domain.User{TelegramID: 2}, UpdatedAt: time.Now().UTC().Add(-time.Hour)}
	store.Put(fresh)
	store.Put(stale)

	removed := store.Sweep(30 * time.Minute)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get(1)
	assert.True(t, ok)
	_, ok = store.Get(2)
	assert.False(t, ok)
}

func TestStoreStateCounts(t *testing.T) {
	store := NewStore()
	store.Put(&Session{User: &domain.User{TelegramID: 1}, State: StateListInput})
	store.Put(&Session{User: &domain.User{TelegramID: 2}, State: StateListInput})
	store.Put(&Session{User: &domain.User{TelegramID: 3}, State: StateAmount})

	counts := store.StateCounts()
	assert.Equal(t, 2, counts[StateListInput])
	assert.Equal(t, 1, counts[StateAmount])
}

func TestStorePutIgnoresNilUser(t *testing.T) {
	store := NewStore()
	store.Put(&Session{})
	assert.Zero(t, store.Len())
}
