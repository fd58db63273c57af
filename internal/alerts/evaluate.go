// Package alerts evaluates price alerts against live quotes.
package alerts

import (
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// Evaluate reports whether the current price satisfies the alert's
// condition. Equality counts as triggered in both directions. Inactive
// alerts never trigger.
func Evaluate(a *models.Alert, currentPrice decimal.Decimal) bool {
	if !a.IsActive {
		return false
	}

	switch a.Condition {
	case models.ConditionAbove:
		return currentPrice.GreaterThanOrEqual(a.TargetPrice)
	case models.ConditionBelow:
		return currentPrice.LessThanOrEqual(a.TargetPrice)
	default:
		return false
	}
}
