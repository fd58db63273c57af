package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// UpsertPosition adds a holding to a user's portfolio. If the coin is
// already held the quantities are summed and the buy price becomes the
// quantity-weighted average of all additions. The merge is a single
// statement, so concurrent additions serialize on the (user_id, coin_id)
// key, first-time inserts of the same coin included.
func (db *DB) UpsertPosition(userID int, coinID, symbol, name string, amount, buyPrice decimal.Decimal) (*models.Position, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrValidation)
	}
	if buyPrice.IsNegative() {
		return nil, fmt.Errorf("buy price must not be negative: %w", models.ErrValidation)
	}

	var p models.Position
	err := db.conn.QueryRow(`
		INSERT INTO positions (user_id, coin_id, symbol, name, amount, buy_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, coin_id) DO UPDATE SET
			amount = positions.amount + EXCLUDED.amount,
			buy_price = (positions.buy_price * positions.amount + EXCLUDED.buy_price * EXCLUDED.amount)
				/ (positions.amount + EXCLUDED.amount),
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, coin_id, symbol, name, amount, buy_price, created_at, updated_at
	`, userID, coinID, symbol, name, amount, buyPrice, time.Now()).Scan(
		&p.ID, &p.UserID, &p.CoinID, &p.Symbol, &p.Name, &p.Amount, &p.BuyPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert position: %w", err)
	}
	return &p, nil
}

// UpdatePosition overwrites amount and/or buy price on an existing holding.
// Nil fields are left unchanged.
func (db *DB) UpdatePosition(userID int, coinID string, amount, buyPrice *decimal.Decimal) error {
	var amountArg, priceArg interface{}
	if amount != nil {
		if amount.IsNegative() {
			return fmt.Errorf("amount must not be negative: %w", models.ErrValidation)
		}
		amountArg = amount.String()
	}
	if buyPrice != nil {
		if buyPrice.IsNegative() {
			return fmt.Errorf("buy price must not be negative: %w", models.ErrValidation)
		}
		priceArg = buyPrice.String()
	}

	result, err := db.conn.Exec(`
		UPDATE positions SET
			amount = COALESCE($3::numeric, amount),
			buy_price = COALESCE($4::numeric, buy_price),
			updated_at = $5
		WHERE user_id = $1 AND coin_id = $2
	`, userID, coinID, amountArg, priceArg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("position not found for %s: %w", coinID, models.ErrNotFound)
	}
	return nil
}

// DeletePosition removes a holding. Deleting a coin that is not held is a
// no-op, matching the at-most-one-position-per-coin invariant.
func (db *DB) DeletePosition(userID int, coinID string) error {
	_, err := db.conn.Exec(`DELETE FROM positions WHERE user_id = $1 AND coin_id = $2`, userID, coinID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// GetPositionsByUser retrieves all holdings for a user
func (db *DB) GetPositionsByUser(userID int) ([]*models.Position, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, coin_id, symbol, name, amount, buy_price, created_at, updated_at
		FROM positions
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		var p models.Position
		err := rows.Scan(
			&p.ID, &p.UserID, &p.CoinID, &p.Symbol, &p.Name, &p.Amount, &p.BuyPrice, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &p)
	}

	return positions, nil
}

// GetPositionByCoin retrieves one holding by coin id
func (db *DB) GetPositionByCoin(userID int, coinID string) (*models.Position, error) {
	var p models.Position
	err := db.conn.QueryRow(`
		SELECT id, user_id, coin_id, symbol, name, amount, buy_price, created_at, updated_at
		FROM positions
		WHERE user_id = $1 AND coin_id = $2
	`, userID, coinID).Scan(
		&p.ID, &p.UserID, &p.CoinID, &p.Symbol, &p.Name, &p.Amount, &p.BuyPrice, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("position not found for %s: %w", coinID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return &p, nil
}
