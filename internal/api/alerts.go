package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// GetAlerts handles GET /api/alerts
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	alerts, err := h.db.GetAlertsByUser(user.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	respondJSON(w, http.StatusOK, alerts)
}

type createAlertRequest struct {
	CoinID      string          `json:"coinId"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Condition   string          `json:"condition"`
}

// CreateAlert handles POST /api/alerts
func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req createAlertRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.CoinID == "" || req.Symbol == "" {
		h.respondError(w, fmt.Errorf("coinId and symbol are required: %w", models.ErrValidation))
		return
	}

	alert := &models.Alert{
		UserID:      user.ID,
		CoinID:      req.CoinID,
		Symbol:      req.Symbol,
		TargetPrice: req.TargetPrice,
		Condition:   req.Condition,
	}
	if err := h.db.CreateAlert(alert); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Alert created successfully")
}

type updateAlertRequest struct {
	TargetPrice *decimal.Decimal `json:"targetPrice"`
	Condition   *string          `json:"condition"`
	IsActive    *bool            `json:"isActive"`
}

// UpdateAlert handles PUT /api/alerts/{alertId}
func (h *Handler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	alertID, err := strconv.Atoi(mux.Vars(r)["alertId"])
	if err != nil {
		h.respondError(w, fmt.Errorf("invalid alert id: %w", models.ErrValidation))
		return
	}

	var req updateAlertRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.db.UpdateAlert(user.ID, alertID, req.TargetPrice, req.Condition, req.IsActive); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Alert updated successfully")
}

// DeleteAlert handles DELETE /api/alerts/{alertId}
func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	alertID, err := strconv.Atoi(mux.Vars(r)["alertId"])
	if err != nil {
		h.respondError(w, fmt.Errorf("invalid alert id: %w", models.ErrValidation))
		return
	}

	if err := h.db.DeleteAlert(user.ID, alertID); err != nil {
		h.respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Alert deleted successfully")
}

// CheckAlerts handles POST /api/alerts/check: one on-demand evaluation
// pass over the caller's active alerts.
func (h *Handler) CheckAlerts(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	triggered, err := h.evaluator.CheckUser(r.Context(), user.ID, displayCurrency(user))
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"triggered": triggered})
}

// GetAlertTriggers handles GET /api/alerts/triggers
func (h *Handler) GetAlertTriggers(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.respondError(w, fmt.Errorf("invalid limit: %w", models.ErrValidation))
			return
		}
		limit = n
	}

	triggers, err := h.db.GetRecentTriggers(user.ID, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if triggers == nil {
		triggers = []*models.AlertTrigger{}
	}

	respondJSON(w, http.StatusOK, triggers)
}
