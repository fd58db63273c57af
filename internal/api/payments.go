package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

// GetWallet handles GET /api/payments/wallet
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	wallet, err := h.db.GetWallet(user.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wallet)
}

type createOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// CreateOrder handles POST /api/payments/create-order
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	order, err := h.payments.CreateOrder(user.ID, req.Amount, req.Currency)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
		"key":   h.payments.KeyID(),
	})
}

type verifyPaymentRequest struct {
	OrderID   string          `json:"orderId"`
	PaymentID string          `json:"paymentId"`
	Signature string          `json:"signature"`
	Amount    decimal.Decimal `json:"amount"`
}

// VerifyPayment handles POST /api/payments/verify
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req verifyPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	wallet, err := h.payments.VerifyAndCredit(r.Context(), user.ID, req.OrderID, req.PaymentID, req.Signature, req.Amount)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Payment verified successfully",
		"wallet":  wallet,
	})
}

type withdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Withdraw handles POST /api/payments/withdraw
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	var req withdrawRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	wallet, err := h.payments.Withdraw(r.Context(), user.ID, req.Amount)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Withdrawal successful",
		"wallet":  wallet,
	})
}
