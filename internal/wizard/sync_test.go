package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpeers/tplbot/internal/domain"
)

func newSyncFixture(transport *fakeTransport) (*Synchronizer, *Session) {
	sess := &Session{
		User:   &domain.User{ID: 7, TelegramID: 100},
		ChatID: 555,
		Draft: &Draft{
			Status: &MessageRef{ChatID: 555, MessageID: 10},
		},
	}

	return NewSynchronizer(transport, nil, testLogger()), sess
}

func TestSyncEditsOnChange(t *testing.T) {
	transport := &fakeTransport{}
	sync, sess := newSyncFixture(transport)

	sess.Draft.Type = domain.OrderTypeBuy
	sync.Sync(context.Background(), sess)

	require.Len(t, transport.edits, 1)
	assert.Equal(t, MessageRef{ChatID: 555, MessageID: 10}, transport.edits[0].Ref)
	assert.Contains(t, transport.edits[0].Text, "Type: buy")
	assert.Equal(t, transport.edits[0].Text, sess.Draft.StatusText)
}

func TestSyncIsIdempotent(t *testing.T) {
	transport := &fakeTransport{}
	sync, sess := newSyncFixture(transport)

	sess.Draft.Currency = "USD"
	sync.Sync(context.Background(), sess)
	sync.Sync(context.Background(), sess)
	sync.Sync(context.Background(), sess)

	assert.Len(t, transport.edits, 1, "unchanged drafts must not be re-edited")
}

func TestSyncNoopWithoutStatusMessage(t *testing.T) {
	transport := &fakeTransport{}
	sync, sess := newSyncFixture(transport)

	sess.Draft.Status = nil
	sync.Sync(context.Background(), sess)

	assert.Empty(t, transport.edits)

	sess.Draft = nil
	sync.Sync(context.Background(), sess)

	assert.Empty(t, transport.edits)
}

func TestSyncAbsorbsNotModified(t *testing.T) {
	transport := &fakeTransport{editErr: ErrNotModified}
	sync, sess := newSyncFixture(transport)

	sess.Draft.Currency = "EUR"
	sync.Sync(context.Background(), sess)

	// nothing blows up and the recorded text stays stale so a later
	// real change is retried
	assert.Empty(t, sess.Draft.StatusText)
}

func TestSyncSwallowsTransportErrors(t *testing.T) {
	transport := &fakeTransport{editErr: errors.New("network down")}
	sync, sess := newSyncFixture(transport)

	sess.Draft.Currency = "EUR"
	sync.Sync(context.Background(), sess)

	assert.Empty(t, sess.Draft.StatusText)

	// recovery on the next call once the transport works again
	transport.editErr = nil
	sync.Sync(context.Background(), sess)

	require.Len(t, transport.edits, 1)
	assert.Equal(t, transport.edits[0].Text, sess.Draft.StatusText)
}

func TestSyncSingleFlight(t *testing.T) {
	transport := &fakeTransport{}
	sync, sess := newSyncFixture(transport)

	// a concurrent edit already in flight drops this call entirely
	sess.Draft.updating.Store(true)
	sess.Draft.Currency = "USD"
	sync.Sync(context.Background(), sess)

	assert.Empty(t, transport.edits)

	sess.Draft.updating.Store(false)
	sync.Sync(context.Background(), sess)

	assert.Len(t, transport.edits, 1)
}
