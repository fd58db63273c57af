// Package portfolio computes the live value of a set of holdings.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Value merges holdings with live quotes into priced positions and an
// aggregate summary. A coin the provider had no quote for is valued at
// zero, so its total value is zero and its profit/loss is the negated
// cost basis. Percentage divisions with a zero denominator yield zero
// instead of failing.
func Value(positions []*models.Position, quotes map[string]models.Quote) ([]models.PricedPosition, models.PortfolioSummary) {
	priced := make([]models.PricedPosition, 0, len(positions))
	summary := models.PortfolioSummary{
		TotalValue:                decimal.Zero,
		TotalProfitLoss:           decimal.Zero,
		TotalProfitLossPercentage: decimal.Zero,
	}

	for _, p := range positions {
		quote := quotes[p.CoinID]
		pp := Price(p, quote)
		priced = append(priced, pp)

		summary.TotalValue = summary.TotalValue.Add(pp.TotalValue)
		summary.TotalProfitLoss = summary.TotalProfitLoss.Add(pp.ProfitLoss)
	}

	// cost basis = value - profit; the percentage is profit over basis.
	// A worthless portfolio reports 0%, not -100%.
	basis := summary.TotalValue.Sub(summary.TotalProfitLoss)
	if !summary.TotalValue.IsZero() && !basis.IsZero() {
		summary.TotalProfitLossPercentage = summary.TotalProfitLoss.Div(basis).Mul(hundred)
	}

	return priced, summary
}

// Price computes the derived fields for a single holding.
func Price(p *models.Position, quote models.Quote) models.PricedPosition {
	pp := models.PricedPosition{
		Position:             *p,
		CurrentPrice:         quote.Price,
		PriceChange24h:       quote.Change24h,
		TotalValue:           p.Amount.Mul(quote.Price),
		ProfitLoss:           quote.Price.Sub(p.BuyPrice).Mul(p.Amount),
		ProfitLossPercentage: decimal.Zero,
	}

	if !p.BuyPrice.IsZero() {
		pp.ProfitLossPercentage = quote.Price.Sub(p.BuyPrice).Div(p.BuyPrice).Mul(hundred)
	}

	return pp
}
