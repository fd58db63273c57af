package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// GetWallet retrieves the user's wallet balance and currency
func (db *DB) GetWallet(userID int) (*models.Wallet, error) {
	var w models.Wallet
	err := db.conn.QueryRow(
		`SELECT wallet_balance, wallet_currency FROM users WHERE id = $1`,
		userID,
	).Scan(&w.Balance, &w.Currency)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// CreditWallet adds a verified top-up to the balance and returns the
// updated wallet. The mutation is a single statement so concurrent
// credits cannot lose updates.
func (db *DB) CreditWallet(userID int, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("credit amount must be positive: %w", models.ErrValidation)
	}

	var w models.Wallet
	err := db.conn.QueryRow(`
		UPDATE users SET wallet_balance = wallet_balance + $2
		WHERE id = $1
		RETURNING wallet_balance, wallet_currency
	`, userID, amount).Scan(&w.Balance, &w.Currency)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}
	return &w, nil
}

// DebitWallet withdraws from the balance. The balance check and the
// mutation are one guarded statement: a withdrawal that would overdraw
// affects zero rows and leaves the balance untouched.
func (db *DB) DebitWallet(userID int, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("debit amount must be positive: %w", models.ErrValidation)
	}

	var w models.Wallet
	err := db.conn.QueryRow(`
		UPDATE users SET wallet_balance = wallet_balance - $2
		WHERE id = $1 AND wallet_balance >= $2
		RETURNING wallet_balance, wallet_currency
	`, userID, amount).Scan(&w.Balance, &w.Currency)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("withdrawal of %s: %w", amount, models.ErrInsufficientFunds)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	return &w, nil
}
