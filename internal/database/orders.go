package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// CreateOrder persists a new payment order in status "created"
func (db *DB) CreateOrder(o *models.PaymentOrder) error {
	now := time.Now()
	_, err := db.conn.Exec(`
		INSERT INTO payment_orders (order_id, user_id, amount, currency, receipt, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.OrderID, o.UserID, o.Amount, o.Currency, o.Receipt, models.OrderStatusCreated, now)
	if err != nil {
		return fmt.Errorf("failed to create payment order: %w", err)
	}
	o.Status = models.OrderStatusCreated
	o.CreatedAt = now
	return nil
}

// GetOrder retrieves a payment order owned by the user
func (db *DB) GetOrder(userID int, orderID string) (*models.PaymentOrder, error) {
	var o models.PaymentOrder
	err := db.conn.QueryRow(`
		SELECT order_id, user_id, amount, currency, receipt, status, created_at
		FROM payment_orders
		WHERE order_id = $1 AND user_id = $2
	`, orderID, userID).Scan(
		&o.OrderID, &o.UserID, &o.Amount, &o.Currency, &o.Receipt, &o.Status, &o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment order %s: %w", orderID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment order: %w", err)
	}
	return &o, nil
}

// MarkOrderPaid transitions an order from "created" to "paid". An order
// that was already consumed affects zero rows, which keeps verification
// single-use under concurrent confirmations.
func (db *DB) MarkOrderPaid(userID int, orderID string) error {
	result, err := db.conn.Exec(`
		UPDATE payment_orders SET status = $3
		WHERE order_id = $1 AND user_id = $2 AND status = $4
	`, orderID, userID, models.OrderStatusPaid, models.OrderStatusCreated)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("payment order %s already processed: %w", orderID, models.ErrConflict)
	}
	return nil
}
