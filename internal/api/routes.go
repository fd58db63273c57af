package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Public market data routes
	crypto := r.PathPrefix("/api/crypto").Subrouter()
	crypto.HandleFunc("/prices", handler.GetPrices).Methods("GET")
	crypto.HandleFunc("/coin/{id}", handler.GetCoin).Methods("GET")
	crypto.HandleFunc("/search", handler.SearchCoins).Methods("GET")
	crypto.HandleFunc("/trending", handler.GetTrending).Methods("GET")
	crypto.HandleFunc("/global", handler.GetGlobal).Methods("GET")
	crypto.HandleFunc("/overview", handler.GetOverview).Methods("GET")

	// Authenticated routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(handler.Authenticate)

	api.HandleFunc("/portfolio", handler.GetPortfolio).Methods("GET")
	api.HandleFunc("/portfolio", handler.AddPosition).Methods("POST")
	api.HandleFunc("/portfolio/{coinId}", handler.UpdatePosition).Methods("PUT")
	api.HandleFunc("/portfolio/{coinId}", handler.DeletePosition).Methods("DELETE")

	api.HandleFunc("/alerts", handler.GetAlerts).Methods("GET")
	api.HandleFunc("/alerts", handler.CreateAlert).Methods("POST")
	api.HandleFunc("/alerts/check", handler.CheckAlerts).Methods("POST")
	api.HandleFunc("/alerts/triggers", handler.GetAlertTriggers).Methods("GET")
	api.HandleFunc("/alerts/{alertId}", handler.UpdateAlert).Methods("PUT")
	api.HandleFunc("/alerts/{alertId}", handler.DeleteAlert).Methods("DELETE")

	api.HandleFunc("/payments/wallet", handler.GetWallet).Methods("GET")
	api.HandleFunc("/payments/create-order", handler.CreateOrder).Methods("POST")
	api.HandleFunc("/payments/verify", handler.VerifyPayment).Methods("POST")
	api.HandleFunc("/payments/withdraw", handler.Withdraw).Methods("POST")

	return r
}
