package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// CreateUser inserts a new account with a zero wallet balance
func (db *DB) CreateUser(u *models.User) error {
	if u.Currency == "" {
		u.Currency = "usd"
	}
	if u.WalletCurrency == "" {
		u.WalletCurrency = "INR"
	}

	now := time.Now()
	err := db.conn.QueryRow(`
		INSERT INTO users (email, name, currency, api_token, wallet_currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, wallet_balance
	`, u.Email, u.Name, u.Currency, u.APIToken, u.WalletCurrency, now).Scan(&u.ID, &u.WalletBalance)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.CreatedAt = now
	return nil
}

// GetUserByToken resolves a bearer token to its account
func (db *DB) GetUserByToken(token string) (*models.User, error) {
	var u models.User
	err := db.conn.QueryRow(`
		SELECT id, email, name, currency, api_token, wallet_balance, wallet_currency, created_at
		FROM users
		WHERE api_token = $1
	`, token).Scan(
		&u.ID, &u.Email, &u.Name, &u.Currency, &u.APIToken, &u.WalletBalance, &u.WalletCurrency, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return &u, nil
}

// GetUserByID retrieves an account by id
func (db *DB) GetUserByID(id int) (*models.User, error) {
	var u models.User
	err := db.conn.QueryRow(`
		SELECT id, email, name, currency, api_token, wallet_balance, wallet_currency, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Currency, &u.APIToken, &u.WalletBalance, &u.WalletCurrency, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
