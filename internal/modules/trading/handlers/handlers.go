// Package handlers provides HTTP handlers for buy/sell operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/modules/trading"
)

// Handler handles trading HTTP requests
type Handler struct {
	service *trading.Service
	log     zerolog.Logger
}

// NewHandler creates a new trading handler
func NewHandler(service *trading.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "trading").Logger(),
	}
}

// tradeRequest is the request body for buy and sell
type tradeRequest struct {
	Ticker string  `json:"ticker"`
	Shares float64 `json:"shares"`
}

// tradeResponse is the response body for a successful mutation
type tradeResponse struct {
	Message string          `json:"message"`
	Result  *trading.Result `json:"result"`
}

// HandleBuy handles POST /api/transactions/buy
func (h *Handler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTradeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.Buy(r.Context(), req.Ticker, req.Shares)
	if err != nil {
		h.writeTradeError(w, err, "buy")
		return
	}

	h.writeJSON(w, http.StatusCreated, tradeResponse{
		Message: "Shares purchased!",
		Result:  result,
	})
}

// HandleSell handles POST /api/transactions/sell
func (h *Handler) HandleSell(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTradeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.Sell(r.Context(), req.Ticker, req.Shares)
	if err != nil {
		h.writeTradeError(w, err, "sell")
		return
	}

	h.writeJSON(w, http.StatusCreated, tradeResponse{
		Message: "Shares sold!",
		Result:  result,
	})
}

func (h *Handler) decodeTradeRequest(w http.ResponseWriter, r *http.Request) (tradeRequest, bool) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker is required")
		return req, false
	}
	return req, true
}

// writeTradeError maps engine failures to response codes: business-rule
// violations are 400, everything else is a 500.
func (h *Handler) writeTradeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrQuoteUnavailable):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Str("operation", op).Msg("Trade failed")
		h.writeError(w, http.StatusInternalServerError, "trade failed")
	}
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
