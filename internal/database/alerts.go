package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// CreateAlert inserts a new price alert. Creation is rejected when the user
// already has an active alert for the same coin, target price and
// condition. The duplicate check runs inside the insert statement so
// concurrent creates cannot both succeed.
func (db *DB) CreateAlert(a *models.Alert) error {
	if a.TargetPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("target price must be positive: %w", models.ErrValidation)
	}
	if !models.ValidCondition(a.Condition) {
		return fmt.Errorf("condition must be ABOVE or BELOW: %w", models.ErrValidation)
	}

	now := time.Now()
	err := db.conn.QueryRow(`
		INSERT INTO alerts (user_id, coin_id, symbol, target_price, condition, is_active, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, true, $6, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM alerts
			WHERE user_id = $1 AND coin_id = $2 AND target_price = $4 AND condition = $5 AND is_active
		)
		RETURNING id
	`, a.UserID, a.CoinID, a.Symbol, a.TargetPrice, a.Condition, now).Scan(&a.ID)

	if err == sql.ErrNoRows {
		return fmt.Errorf("alert for this price target: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// UpdateAlert applies a partial update to an alert owned by the user.
// Nil fields are left unchanged.
func (db *DB) UpdateAlert(userID, alertID int, targetPrice *decimal.Decimal, condition *string, isActive *bool) error {
	var priceArg, conditionArg, activeArg interface{}
	if targetPrice != nil {
		if targetPrice.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("target price must be positive: %w", models.ErrValidation)
		}
		priceArg = targetPrice.String()
	}
	if condition != nil {
		if !models.ValidCondition(*condition) {
			return fmt.Errorf("condition must be ABOVE or BELOW: %w", models.ErrValidation)
		}
		conditionArg = *condition
	}
	if isActive != nil {
		activeArg = *isActive
	}

	result, err := db.conn.Exec(`
		UPDATE alerts SET
			target_price = COALESCE($3::numeric, target_price),
			condition = COALESCE($4::text, condition),
			is_active = COALESCE($5::boolean, is_active),
			updated_at = $6
		WHERE user_id = $1 AND id = $2
	`, userID, alertID, priceArg, conditionArg, activeArg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("alert %d: %w", alertID, models.ErrNotFound)
	}
	return nil
}

// DeleteAlert removes an alert owned by the user
func (db *DB) DeleteAlert(userID, alertID int) error {
	result, err := db.conn.Exec(`DELETE FROM alerts WHERE user_id = $1 AND id = $2`, userID, alertID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("alert %d: %w", alertID, models.ErrNotFound)
	}
	return nil
}

// GetAlertsByUser retrieves all alerts for a user
func (db *DB) GetAlertsByUser(userID int) ([]*models.Alert, error) {
	query := `
		SELECT id, user_id, coin_id, symbol, target_price, condition, is_active, created_at, updated_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return db.scanAlerts(db.conn.Query(query, userID))
}

// GetActiveAlertsByUser retrieves the user's active alerts
func (db *DB) GetActiveAlertsByUser(userID int) ([]*models.Alert, error) {
	query := `
		SELECT id, user_id, coin_id, symbol, target_price, condition, is_active, created_at, updated_at
		FROM alerts
		WHERE user_id = $1 AND is_active
		ORDER BY coin_id, target_price
	`
	return db.scanAlerts(db.conn.Query(query, userID))
}

func (db *DB) scanAlerts(rows *sql.Rows, err error) ([]*models.Alert, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		var a models.Alert
		err := rows.Scan(
			&a.ID, &a.UserID, &a.CoinID, &a.Symbol, &a.TargetPrice, &a.Condition, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, &a)
	}

	return alerts, nil
}

// CreateAlertTrigger records one firing of an alert
func (db *DB) CreateAlertTrigger(t *models.AlertTrigger) error {
	err := db.conn.QueryRow(`
		INSERT INTO alert_triggers (alert_id, coin_id, price, triggered_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.AlertID, t.CoinID, t.Price, time.Now()).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create alert trigger: %w", err)
	}
	return nil
}

// GetRecentTriggers retrieves the most recent trigger records for a user's alerts
func (db *DB) GetRecentTriggers(userID, limit int) ([]*models.AlertTrigger, error) {
	rows, err := db.conn.Query(`
		SELECT t.id, t.alert_id, t.coin_id, t.price, t.triggered_at
		FROM alert_triggers t
		JOIN alerts a ON a.id = t.alert_id
		WHERE a.user_id = $1
		ORDER BY t.triggered_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*models.AlertTrigger
	for rows.Next() {
		var t models.AlertTrigger
		if err := rows.Scan(&t.ID, &t.AlertID, &t.CoinID, &t.Price, &t.TriggeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert trigger: %w", err)
		}
		triggers = append(triggers, &t)
	}

	return triggers, nil
}
