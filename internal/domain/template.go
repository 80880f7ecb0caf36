// Package domain holds the core entities shared across the bot.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderType distinguishes buy and sell order templates.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// Valid reports whether the order type is one of the known values.
func (t OrderType) Valid() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

// Template is a saved, reusable specification for creating a trade order
// without re-entering its parameters.
type Template struct {
	ID            string
	CreatorID     int64
	Type          OrderType
	FiatCode      string
	FiatAmount    []float64
	PaymentMethod string
	PriceFromAPI  bool
	PriceMargin   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AmountLabel formats the fiat amount as "50" for exact amounts or
// "50-100" for ranges.
func (t *Template) AmountLabel() string {
	parts := make([]string, 0, len(t.FiatAmount))
	for _, v := range t.FiatAmount {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, "-")
}

// TypeLabel returns the single-letter marker used in list rows.
func (t *Template) TypeLabel() string {
	if t.Type == OrderTypeBuy {
		return "B"
	}
	return "S"
}

// String implements fmt.Stringer for log output.
func (t *Template) String() string {
	return fmt.Sprintf("template %s (%s %s %s)", t.ID, t.Type, t.FiatCode, t.AmountLabel())
}
