// Package handlers provides HTTP handlers for instrument search.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/modules/instruments"
)

// Handler handles instrument HTTP requests
type Handler struct {
	service *instruments.Service
	log     zerolog.Logger
}

// NewHandler creates a new instruments handler
func NewHandler(service *instruments.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "instruments").Logger(),
	}
}

// HandleSearch handles GET /api/instruments/search?ticker=SYM
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker query parameter is required")
		return
	}

	instrument, err := h.service.Search(r.Context(), ticker)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInstrumentNotFound):
			h.writeError(w, http.StatusNotFound, "instrument not found")
		case errors.Is(err, domain.ErrQuoteUnavailable):
			h.log.Warn().Err(err).Str("ticker", ticker).Msg("Quote lookup failed")
			h.writeError(w, http.StatusBadRequest, "quote service unavailable")
		default:
			h.log.Error().Err(err).Str("ticker", ticker).Msg("Instrument search failed")
			h.writeError(w, http.StatusInternalServerError, "failed to search instrument")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, instrument)
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
