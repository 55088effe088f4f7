package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers instrument routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/instruments/search", h.HandleSearch)
}
