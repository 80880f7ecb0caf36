package order

import (
	"context"
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

type fakePending struct {
	atLimit bool
	err     error
}

func (f *fakePending) IsMaxPending(ctx context.Context, user *domain.User) (bool, error) {
	return f.atLimit, f.err
}

type fakeCreator struct {
	draft    Draft
	order    *domain.Order
	err      error
	rejected bool
}

func (f *fakeCreator) Create(ctx context.Context, user *domain.User, draft Draft) (*domain.Order, error) {
	f.draft = draft
	if f.err != nil {
		return nil, f.err
	}
	if f.rejected {
		return nil, nil
	}
	if f.order == nil {
		f.order = &domain.Order{
			ID:        "ord-1",
			CreatorID: user.ID,
			Type:      draft.Type,
			Status:    draft.Status,
		}
	}
	return f.order, nil
}

type fakeBroadcaster struct {
	buys  []*domain.Order
	sells []*domain.Order
	err   error
}

func (f *fakeBroadcaster) PublishBuyOrder(ctx context.Context, user *domain.User, ord *domain.Order) error {
	f.buys = append(f.buys, ord)
	return f.err
}

func (f *fakeBroadcaster) PublishSellOrder(ctx context.Context, user *domain.User, ord *domain.Order) error {
	f.sells = append(f.sells, ord)
	return f.err
}

type fakeNotifier struct {
	notices []string
}

func (f *fakeNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	f.notices = append(f.notices, text)
	return nil
}

func testTemplate(typ domain.OrderType) *domain.Template {
	return &domain.Template{
		ID:            "tpl-1",
		CreatorID:     7,
		Type:          typ,
		FiatCode:      "USD",
		FiatAmount:    []float64{50, 100},
		PaymentMethod: "zelle",
		PriceFromAPI:  true,
		PriceMargin:   3,
	}
}

func testUser() *domain.User {
	return &domain.User{ID: 7, TelegramID: 100, DefaultCommunityID: "comm-1"}
}

func TestPublishCreatesMarketPricedOrder(t *testing.T) {
	pending := &fakePending{}
	creator := &fakeCreator{}
	broadcast := &fakeBroadcaster{}
	notifier := &fakeNotifier{}

	p := NewPublisher(pending, creator, broadcast, notifier, nil, testLogger())
	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeBuy))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeBuy, creator.draft.Type)
	assert.Zero(t, creator.draft.Amount, "published orders are market priced")
	assert.Equal(t, []float64{50, 100}, creator.draft.FiatAmount)
	assert.Equal(t, "USD", creator.draft.FiatCode)
	assert.Equal(t, "zelle", creator.draft.PaymentMethod)
	assert.Equal(t, domain.OrderStatusPending, creator.draft.Status)
	assert.Equal(t, 3, creator.draft.PriceMargin)
	assert.Equal(t, "comm-1", creator.draft.CommunityID)

	require.Len(t, broadcast.buys, 1)
	assert.Empty(t, broadcast.sells)
	assert.Empty(t, notifier.notices)
}

func TestPublishRoutesSellOrders(t *testing.T) {
	broadcast := &fakeBroadcaster{}
	p := NewPublisher(&fakePending{}, &fakeCreator{}, broadcast, &fakeNotifier{}, nil, testLogger())

	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeSell))
	require.NoError(t, err)

	assert.Empty(t, broadcast.buys)
	assert.Len(t, broadcast.sells, 1)
}

func TestPublishQuotaStopsBeforeCreation(t *testing.T) {
	creator := &fakeCreator{}
	broadcast := &fakeBroadcaster{}
	notifier := &fakeNotifier{}

	p := NewPublisher(&fakePending{atLimit: true}, creator, broadcast, notifier, nil, testLogger())
	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeBuy))
	require.NoError(t, err)

	assert.Empty(t, creator.draft.FiatCode, "no order must be created at the quota")
	assert.Empty(t, broadcast.buys)
	require.Len(t, notifier.notices, 1)
	assert.Contains(t, notifier.notices[0], "too many pending orders")
}

func TestPublishQuotaCheckFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	p := NewPublisher(&fakePending{err: errors.New("db down")}, &fakeCreator{}, &fakeBroadcaster{}, notifier, nil, testLogger())

	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeBuy))
	require.Error(t, err)
	require.Len(t, notifier.notices, 1)
	assert.Contains(t, notifier.notices[0], "try again later")
}

func TestPublishCreateFailure(t *testing.T) {
	broadcast := &fakeBroadcaster{}
	notifier := &fakeNotifier{}
	p := NewPublisher(&fakePending{}, &fakeCreator{err: errors.New("insert failed")}, broadcast, notifier, nil, testLogger())

	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeSell))
	require.Error(t, err)
	assert.Empty(t, broadcast.sells)
	require.Len(t, notifier.notices, 1)
}

func TestPublishRejectedOrderIsSilent(t *testing.T) {
	broadcast := &fakeBroadcaster{}
	notifier := &fakeNotifier{}
	p := NewPublisher(&fakePending{}, &fakeCreator{rejected: true}, broadcast, notifier, nil, testLogger())

	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeBuy))
	require.NoError(t, err)
	assert.Empty(t, broadcast.buys)
	assert.Empty(t, notifier.notices)
}

func TestPublishBroadcastFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	p := NewPublisher(&fakePending{}, &fakeCreator{}, &fakeBroadcaster{err: errors.New("channel gone")}, notifier, nil, testLogger())

	err := p.Publish(context.Background(), testUser(), testTemplate(domain.OrderTypeBuy))
	require.Error(t, err)
	require.Len(t, notifier.notices, 1)
}
