package order

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
)

// ChannelBroadcaster announces new offers in the public offers channel.
type ChannelBroadcaster struct {
	notifier  Notifier
	channelID int64
	t         i18n.Translator
	log       *slog.Logger
}

// NewChannelBroadcaster creates a broadcaster posting to channelID.
func NewChannelBroadcaster(notifier Notifier, channelID int64, t i18n.Translator, log *slog.Logger) *ChannelBroadcaster {
	if log == nil {
		log = slog.Default()
	}

	return &ChannelBroadcaster{
		notifier:  notifier,
		channelID: channelID,
		t:         t,
		log:       log,
	}
}

// PublishBuyOrder announces a buy offer.
func (b *ChannelBroadcaster) PublishBuyOrder(ctx context.Context, user *domain.User, ord *domain.Order) error {
	return b.publish(ctx, ord, b.text("publish.offer_buy", "Someone wants to buy sats"))
}

// PublishSellOrder announces a sell offer.
func (b *ChannelBroadcaster) PublishSellOrder(ctx context.Context, user *domain.User, ord *domain.Order) error {
	return b.publish(ctx, ord, b.text("publish.offer_sell", "Someone wants to sell sats"))
}

func (b *ChannelBroadcaster) publish(ctx context.Context, ord *domain.Order, header string) error {
	if err := b.notifier.Notify(ctx, b.channelID, formatOffer(header, ord)); err != nil {
		return fmt.Errorf("announce order %s: %w", ord.ID, err)
	}

	b.log.Info("published order", slog.String("order_id", ord.ID), slog.String("type", string(ord.Type)))
	return nil
}

func formatOffer(header string, ord *domain.Order) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")

	amounts := make([]string, 0, len(ord.FiatAmount))
	for _, v := range ord.FiatAmount {
		amounts = append(amounts, strconv.FormatFloat(v, 'f', -1, 64))
	}

	fmt.Fprintf(&sb, "%s %s\n", ord.FiatCode, strings.Join(amounts, "-"))
	fmt.Fprintf(&sb, "%s\n", ord.PaymentMethod)
	if ord.PriceMargin != 0 {
		fmt.Fprintf(&sb, "%+d%% over market\n", ord.PriceMargin)
	}
	fmt.Fprintf(&sb, "#%s", ord.ID)

	return sb.String()
}

func (b *ChannelBroadcaster) text(key, fallback string) string {
	if b.t == nil {
		return fallback
	}

	text := strings.TrimSpace(b.t.T(key))
	if text == "" || text == key {
		return fallback
	}

	return text
}
