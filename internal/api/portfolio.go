package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/portfolio"
)

// GetPortfolio handles GET /api/portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	positions, err := h.db.GetPositionsByUser(user.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	quotes := map[string]models.Quote{}
	if len(positions) > 0 {
		ids := make([]string, 0, len(positions))
		for _, p := range positions {
			ids = append(ids, p.CoinID)
		}
		quotes, err = h.market.SimplePrices(r.Context(), ids, displayCurrency(user))
		if err != nil {
			h.respondError(w, err)
			return
		}
	}

	priced, summary := portfolio.Value(positions, quotes)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"portfolio": priced,
		"summary":   summary,
	})
}

type addPositionRequest struct {
	CoinID   string          `json:"coinId"`
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	BuyPrice decimal.Decimal `json:"buyPrice"`
}

// AddPosition handles POST /api/portfolio
func (h *Handler) AddPosition(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req addPositionRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.CoinID == "" || req.Symbol == "" || req.Name == "" {
		h.respondError(w, fmt.Errorf("coinId, symbol and name are required: %w", models.ErrValidation))
		return
	}

	if _, err := h.db.UpsertPosition(user.ID, req.CoinID, req.Symbol, req.Name, req.Amount, req.BuyPrice); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Coin added to portfolio successfully")
}

type updatePositionRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	BuyPrice *decimal.Decimal `json:"buyPrice"`
}

// UpdatePosition handles PUT /api/portfolio/{coinId}
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	coinID := mux.Vars(r)["coinId"]

	var req updatePositionRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.db.UpdatePosition(user.ID, coinID, req.Amount, req.BuyPrice); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Portfolio updated successfully")
}

// DeletePosition handles DELETE /api/portfolio/{coinId}
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	coinID := mux.Vars(r)["coinId"]

	if err := h.db.DeletePosition(user.ID, coinID); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Coin removed from portfolio successfully")
}
