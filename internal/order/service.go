package order

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lnpeers/tplbot/internal/domain"
)

// pendingStatuses are the order states that count against the quota.
var pendingStatuses = []string{
	domain.OrderStatusPending,
	domain.OrderStatusActive,
	domain.OrderStatusWaitingPayment,
	domain.OrderStatusWaitingBuyerInvoice,
}

// Service implements order creation and the pending-order quota over
// the orders table.
type Service struct {
	db         *sql.DB
	maxPending int
	log        *slog.Logger
}

// NewService creates the order Service.
func NewService(db *sql.DB, maxPending int, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:         db,
		maxPending: maxPending,
		log:        log,
	}
}

// IsMaxPending reports whether the user already has the maximum number
// of unfulfilled orders.
func (s *Service) IsMaxPending(ctx context.Context, user *domain.User) (bool, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE creator_id = $1 AND status = ANY($2)`

	var count int
	if err := s.db.QueryRowContext(ctx, query, user.ID, pq.Array(pendingStatuses)).Scan(&count); err != nil {
		return false, fmt.Errorf("count pending orders: %w", err)
	}

	return count >= s.maxPending, nil
}

// Create persists a new order from the draft and returns it.
func (s *Service) Create(ctx context.Context, user *domain.User, d Draft) (*domain.Order, error) {
	const query = `
		INSERT INTO orders (id, creator_id, type, amount, fiat_amount, fiat_code, payment_method, status, price_margin, community_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
	`

	ord := &domain.Order{
		ID:            uuid.NewString(),
		CreatorID:     user.ID,
		Type:          d.Type,
		Amount:        d.Amount,
		FiatAmount:    d.FiatAmount,
		FiatCode:      d.FiatCode,
		PaymentMethod: d.PaymentMethod,
		Status:        d.Status,
		PriceMargin:   d.PriceMargin,
		CommunityID:   d.CommunityID,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := s.db.ExecContext(
		ctx,
		query,
		ord.ID,
		ord.CreatorID,
		string(ord.Type),
		ord.Amount,
		pq.Array(ord.FiatAmount),
		ord.FiatCode,
		ord.PaymentMethod,
		ord.Status,
		ord.PriceMargin,
		ord.CommunityID,
		ord.CreatedAt,
	); err != nil {
		if s.log != nil {
			s.log.Error("failed to insert order", slog.Int64("creator_id", ord.CreatorID), slog.Any("error", err))
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return ord, nil
}
