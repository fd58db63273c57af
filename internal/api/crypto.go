package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

// GetPrices handles GET /api/crypto/prices
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	vsCurrency := queryOr(r, "vs_currency", "usd")
	order := queryOr(r, "order", "market_cap_desc")

	perPage, err := strconv.Atoi(queryOr(r, "per_page", "100"))
	if err != nil || perPage <= 0 {
		h.respondError(w, fmt.Errorf("invalid per_page: %w", models.ErrValidation))
		return
	}
	page, err := strconv.Atoi(queryOr(r, "page", "1"))
	if err != nil || page <= 0 {
		h.respondError(w, fmt.Errorf("invalid page: %w", models.ErrValidation))
		return
	}

	data, err := h.market.Markets(r.Context(), vsCurrency, order, perPage, page)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondRaw(w, data)
}

// GetCoin handles GET /api/crypto/coin/{id}
func (h *Handler) GetCoin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	vsCurrency := queryOr(r, "vs_currency", "usd")

	coin, err := h.market.Coin(r.Context(), id, vsCurrency)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, coin)
}

// SearchCoins handles GET /api/crypto/search
func (h *Handler) SearchCoins(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		h.respondError(w, fmt.Errorf("search query is required: %w", models.ErrValidation))
		return
	}

	data, err := h.market.Search(r.Context(), query)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondRaw(w, data)
}

// GetTrending handles GET /api/crypto/trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	data, err := h.market.Trending(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondRaw(w, data)
}

// GetGlobal handles GET /api/crypto/global
func (h *Handler) GetGlobal(w http.ResponseWriter, r *http.Request) {
	data, err := h.market.Global(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondRaw(w, data)
}

// GetOverview handles GET /api/crypto/overview: global stats and trending
// coins in one response.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	global, trending, err := h.market.Overview(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"global":   global,
		"trending": trending,
	})
}

func respondRaw(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
