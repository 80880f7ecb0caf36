package domain

import "time"

// Order statuses used by the publish pipeline. Matching and settlement
// happen elsewhere; this subsystem only creates PENDING orders.
const (
	OrderStatusPending             = "PENDING"
	OrderStatusActive              = "ACTIVE"
	OrderStatusWaitingPayment      = "WAITING_PAYMENT"
	OrderStatusWaitingBuyerInvoice = "WAITING_BUYER_INVOICE"
)

// Order is a live trade offer created from a template. Amount 0 means
// the order is priced from the market reference at take time.
type Order struct {
	ID            string
	CreatorID     int64
	Type          OrderType
	Amount        int64
	FiatAmount    []float64
	FiatCode      string
	PaymentMethod string
	Status        string
	PriceMargin   int
	CommunityID   string
	CreatedAt     time.Time
}
