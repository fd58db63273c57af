package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder. APIToken is the opaque bearer token presented
// on authenticated requests.
type User struct {
	ID             int             `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	WalletBalance  decimal.Decimal `json:"-"`
	WalletCurrency string          `json:"-"`
	APIToken       string          `json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Wallet is the balance view returned to the owner.
type Wallet struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}
