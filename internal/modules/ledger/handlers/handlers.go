// Package handlers provides HTTP handlers for transaction log access.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/modules/ledger"
)

// Handler handles transaction log HTTP requests
type Handler struct {
	transactions *ledger.TransactionRepository
	log          zerolog.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(transactions *ledger.TransactionRepository, log zerolog.Logger) *Handler {
	return &Handler{
		transactions: transactions,
		log:          log.With().Str("handler", "ledger").Logger(),
	}
}

// HandleListTransactions handles GET /api/transactions?limit=N&ticker=T
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0 // no limit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var (
		transactions []ledger.Transaction
		err          error
	)
	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		transactions, err = h.transactions.ListByTicker(ticker, limit)
	} else {
		transactions, err = h.transactions.List(limit)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	h.writeJSON(w, http.StatusOK, transactions)
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
