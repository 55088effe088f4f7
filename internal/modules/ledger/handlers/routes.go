package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers transaction log routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/transactions", h.HandleListTransactions)
}
