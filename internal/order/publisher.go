// Package order turns saved templates into live orders and announces
// them. Matching and settlement are handled by downstream systems.
package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
)

// Draft carries the fields of an order creation request.
type Draft struct {
	Type          domain.OrderType
	Amount        int64
	FiatAmount    []float64
	FiatCode      string
	PaymentMethod string
	Status        string
	PriceMargin   int
	CommunityID   string
}

// Creator creates live orders. A (nil, nil) result means the pipeline
// rejected the order without error; nothing is broadcast for it.
type Creator interface {
	Create(ctx context.Context, user *domain.User, draft Draft) (*domain.Order, error)
}

// PendingChecker reports whether a user is at the pending-order quota.
type PendingChecker interface {
	IsMaxPending(ctx context.Context, user *domain.User) (bool, error)
}

// Broadcaster announces a created order through the buy or sell path.
type Broadcaster interface {
	PublishBuyOrder(ctx context.Context, user *domain.User, ord *domain.Order) error
	PublishSellOrder(ctx context.Context, user *domain.User, ord *domain.Order) error
}

// Notifier delivers plain user-facing notices.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

var publishRecorder = func(status string) {}

// RegisterPublishRecorder allows external packages to observe publish
// outcomes, e.g. for metrics.
func RegisterPublishRecorder(recorder func(status string)) {
	if recorder == nil {
		publishRecorder = func(string) {}
		return
	}

	publishRecorder = recorder
}

// Publisher converts a template into a live market-priced order.
type Publisher struct {
	pending   PendingChecker
	orders    Creator
	broadcast Broadcaster
	notifier  Notifier
	t         i18n.Translator
	log       *slog.Logger
}

// NewPublisher wires the publish adapter over its collaborators.
func NewPublisher(
	pending PendingChecker,
	orders Creator,
	broadcast Broadcaster,
	notifier Notifier,
	t i18n.Translator,
	log *slog.Logger,
) *Publisher {
	if log == nil {
		log = slog.Default()
	}

	return &Publisher{
		pending:   pending,
		orders:    orders,
		broadcast: broadcast,
		notifier:  notifier,
		t:         t,
		log:       log,
	}
}

// Publish creates a live order from the template and announces it.
// Quota violations get a dedicated message and abort the publish; any
// other failure is logged and reported to the user as a generic error.
// Nothing is retried.
func (p *Publisher) Publish(ctx context.Context, user *domain.User, tpl *domain.Template) error {
	atLimit, err := p.pending.IsMaxPending(ctx, user)
	if err != nil {
		p.reportFailure(ctx, user)
		publishRecorder("error")
		return fmt.Errorf("check pending quota: %w", err)
	}
	if atLimit {
		p.notify(ctx, user.TelegramID, p.text("publish.too_many_pending", "You have too many pending orders, finish or cancel some first"))
		publishRecorder("quota")
		return nil
	}

	// amount 0 marks the order as market priced
	ord, err := p.orders.Create(ctx, user, Draft{
		Type:          tpl.Type,
		Amount:        0,
		FiatAmount:    tpl.FiatAmount,
		FiatCode:      tpl.FiatCode,
		PaymentMethod: tpl.PaymentMethod,
		Status:        domain.OrderStatusPending,
		PriceMargin:   tpl.PriceMargin,
		CommunityID:   user.DefaultCommunityID,
	})
	if err != nil {
		p.reportFailure(ctx, user)
		publishRecorder("error")
		return fmt.Errorf("create order from template %s: %w", tpl.ID, err)
	}
	if ord == nil {
		publishRecorder("rejected")
		return nil
	}

	if tpl.Type == domain.OrderTypeBuy {
		err = p.broadcast.PublishBuyOrder(ctx, user, ord)
	} else {
		err = p.broadcast.PublishSellOrder(ctx, user, ord)
	}
	if err != nil {
		p.reportFailure(ctx, user)
		publishRecorder("error")
		return fmt.Errorf("broadcast order %s: %w", ord.ID, err)
	}

	publishRecorder("ok")
	return nil
}

func (p *Publisher) reportFailure(ctx context.Context, user *domain.User) {
	p.notify(ctx, user.TelegramID, p.text("publish.generic_error", "Something went wrong, please try again later"))
}

func (p *Publisher) notify(ctx context.Context, chatID int64, text string) {
	if err := p.notifier.Notify(ctx, chatID, text); err != nil {
		p.log.Warn("failed to notify user", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}

func (p *Publisher) text(key, fallback string) string {
	if p.t == nil {
		return fallback
	}

	text := strings.TrimSpace(p.t.T(key))
	if text == "" || text == key {
		return fallback
	}

	return text
}
