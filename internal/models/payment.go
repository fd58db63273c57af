package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment order status constants
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// PaymentOrder represents a gateway top-up order. Amount is in minor units
// (paise/cents) as the gateway expects.
type PaymentOrder struct {
	OrderID   string    `json:"id"`
	UserID    int       `json:"-"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletEvent is published after a verified wallet mutation.
type WalletEvent struct {
	EventType string          `json:"event_type"`
	UserID    int             `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	OrderID   string          `json:"order_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AlertEvent is published when an alert evaluation finds the price past
// its target.
type AlertEvent struct {
	EventType   string          `json:"event_type"`
	UserID      int             `json:"user_id"`
	AlertID     int             `json:"alert_id"`
	CoinID      string          `json:"coin_id"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
}
