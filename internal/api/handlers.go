package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/alerts"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/database"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/market"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/payments"
)

// MarketClient is the slice of the market data client the handlers use
type MarketClient interface {
	SimplePrices(ctx context.Context, ids []string, vsCurrency string) (map[string]models.Quote, error)
	Markets(ctx context.Context, vsCurrency, order string, perPage, page int) (json.RawMessage, error)
	Coin(ctx context.Context, id, vsCurrency string) (*market.CoinDetail, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Trending(ctx context.Context) (json.RawMessage, error)
	Global(ctx context.Context) (json.RawMessage, error)
	Overview(ctx context.Context) (global, trending json.RawMessage, err error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db        *database.DB
	market    MarketClient
	evaluator *alerts.Evaluator
	payments  *payments.Service
	log       zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(db *database.DB, market MarketClient, evaluator *alerts.Evaluator, pay *payments.Service, log zerolog.Logger) *Handler {
	return &Handler{
		db:        db,
		market:    market,
		evaluator: evaluator,
		payments:  pay,
		log:       log,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps the error taxonomy onto HTTP status codes
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrInsufficientFunds):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		// keep driver/internal detail in the log, not the response
		h.log.Error().Err(err).Msg("request failed")
		respondMessage(w, status, "Server error")
		return
	}
	respondMessage(w, status, err.Error())
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.ErrValidation
	}
	return nil
}
