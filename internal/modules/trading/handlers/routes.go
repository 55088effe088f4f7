package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers trading routes. The GET side of /transactions
// (log listing) belongs to the ledger module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/transactions/buy", h.HandleBuy)
	r.Post("/transactions/sell", h.HandleSell)
}
