package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert condition constants
const (
	ConditionAbove = "ABOVE"
	ConditionBelow = "BELOW"
)

// Alert represents a price alert for a coin. An alert stays active after
// triggering until the owner toggles or deletes it.
type Alert struct {
	ID          int             `json:"id"`
	UserID      int             `json:"-"`
	CoinID      string          `json:"coinId"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Condition   string          `json:"condition"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AlertTrigger records one evaluation pass that found the price past the
// alert's target.
type AlertTrigger struct {
	ID          int             `json:"id"`
	AlertID     int             `json:"alertId"`
	CoinID      string          `json:"coinId"`
	Price       decimal.Decimal `json:"price"`
	TriggeredAt time.Time       `json:"triggeredAt"`
}

// ValidCondition reports whether c is a supported alert condition.
func ValidCondition(c string) bool {
	return c == ConditionAbove || c == ConditionBelow
}
