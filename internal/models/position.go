package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position represents a coin holding in a user's portfolio.
// BuyPrice is the quantity-weighted average cost across all additions.
type Position struct {
	ID        int             `json:"id"`
	UserID    int             `json:"-"`
	CoinID    string          `json:"coinId"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PricedPosition is a Position joined with live market data. Derived on
// every read, never persisted.
type PricedPosition struct {
	Position
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	PriceChange24h       decimal.Decimal `json:"priceChange24h"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage decimal.Decimal `json:"profitLossPercentage"`
}

// PortfolioSummary aggregates priced positions.
type PortfolioSummary struct {
	TotalValue                decimal.Decimal `json:"totalValue"`
	TotalProfitLoss           decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercentage decimal.Decimal `json:"totalProfitLossPercentage"`
}
