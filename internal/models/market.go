package models

import "github.com/shopspring/decimal"

// Quote is a spot price with 24h change for one coin in the requested
// display currency. A zero Quote is used when the provider had no data.
type Quote struct {
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
}
