package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:            "ord-1",
		Type:          domain.OrderTypeSell,
		FiatCode:      "EUR",
		FiatAmount:    []float64{20, 80},
		PaymentMethod: "sepa",
		PriceMargin:   -2,
	}
}

func TestBroadcasterPostsToChannel(t *testing.T) {
	notifier := &fakeNotifier{}
	b := NewChannelBroadcaster(notifier, -100200, nil, testLogger())

	err := b.PublishSellOrder(context.Background(), testUser(), testOrder())
	require.NoError(t, err)

	require.Len(t, notifier.notices, 1)
	text := notifier.notices[0]
	assert.Contains(t, text, "Someone wants to sell sats")
	assert.Contains(t, text, "EUR 20-80")
	assert.Contains(t, text, "sepa")
	assert.Contains(t, text, "-2% over market")
	assert.Contains(t, text, "#ord-1")
}

func TestBroadcasterOmitsZeroMargin(t *testing.T) {
	notifier := &fakeNotifier{}
	b := NewChannelBroadcaster(notifier, -100200, nil, testLogger())

	ord := testOrder()
	ord.PriceMargin = 0
	ord.Type = domain.OrderTypeBuy

	err := b.PublishBuyOrder(context.Background(), testUser(), ord)
	require.NoError(t, err)

	require.Len(t, notifier.notices, 1)
	assert.Contains(t, notifier.notices[0], "Someone wants to buy sats")
	assert.NotContains(t, notifier.notices[0], "over market")
}

func TestBroadcasterUsesTranslator(t *testing.T) {
	notifier := &fakeNotifier{}
	tr := i18n.NewStatic("es", map[string]string{
		"publish.offer_sell": "Alguien quiere vender sats",
	}).Translator("es")
	b := NewChannelBroadcaster(notifier, -100200, tr, testLogger())

	err := b.PublishSellOrder(context.Background(), testUser(), testOrder())
	require.NoError(t, err)

	require.Len(t, notifier.notices, 1)
	assert.Contains(t, notifier.notices[0], "Alguien quiere vender sats")
}
