package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticate resolves the bearer token to an account and stores it on
// the request context. Requests without a valid token get 401.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := h.db.GetUserByToken(token)
		if err != nil {
			h.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated account stored by Authenticate
func userFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

func displayCurrency(u *models.User) string {
	if u.Currency != "" {
		return u.Currency
	}
	return "usd"
}
