// Package handlers provides HTTP handlers for portfolio views.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleListPortfolio handles GET /api/portfolio.
// Returns a JSON array of per-position valuations; [] for an empty portfolio.
func (h *Handler) HandleListPortfolio(w http.ResponseWriter, r *http.Request) {
	valuations, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list portfolio")
		h.writeError(w, http.StatusInternalServerError, "failed to list portfolio")
		return
	}

	h.writeJSON(w, http.StatusOK, valuations)
}

// HandlePortfolioStatus handles GET /api/portfolio/status.
// Always returns a summary object; zero-valued when nothing is held.
func (h *Handler) HandlePortfolioStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Status(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute portfolio status")
		h.writeError(w, http.StatusInternalServerError, "failed to compute portfolio status")
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
