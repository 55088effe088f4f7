// Package trading implements the portfolio accounting engine: the rules by
// which buy and sell requests deterministically update the positions
// aggregate and append to the transaction log.
package trading

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/database"
	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/modules/ledger"
	"github.com/rocketfin/rocketfin/internal/modules/portfolio"
	"github.com/rocketfin/rocketfin/internal/utils"
)

// PositionStore is the position half of the ledger store, scoped to what the
// engine needs. All mutations run inside the engine's commit boundary.
type PositionStore interface {
	GetByTickerTx(tx *sql.Tx, ticker string) (*portfolio.Position, error)
	UpsertTx(tx *sql.Tx, position portfolio.Position) error
	DeleteTx(tx *sql.Tx, ticker string) error
}

// TransactionLog appends immutable audit-trail entries.
type TransactionLog interface {
	AppendTx(tx *sql.Tx, t ledger.Transaction) (ledger.Transaction, error)
}

// Compile-time checks that the concrete repositories satisfy the contracts
var (
	_ PositionStore  = (*portfolio.PositionRepository)(nil)
	_ TransactionLog = (*ledger.TransactionRepository)(nil)
)

// Service executes buy and sell operations
type Service struct {
	db           *database.DB
	positions    PositionStore
	transactions TransactionLog
	quotes       domain.QuoteProvider
	log          zerolog.Logger
}

// NewService creates a new trading service
func NewService(
	db *database.DB,
	positions PositionStore,
	transactions TransactionLog,
	quotes domain.QuoteProvider,
	log zerolog.Logger,
) *Service {
	return &Service{
		db:           db,
		positions:    positions,
		transactions: transactions,
		quotes:       quotes,
		log:          log.With().Str("service", "trading").Logger(),
	}
}

// Result is the outcome of a successful buy or sell.
type Result struct {
	// Position is the state after the operation; nil when the sell closed
	// the position entirely.
	Position *portfolio.Position `json:"position,omitempty"`
	// Removed reports that the position reached exactly zero shares and was
	// deleted from the store.
	Removed     bool               `json:"removed"`
	Transaction ledger.Transaction `json:"transaction"`
}

// Buy purchases shares at the current market price.
//
// Quantity is validated before any quote lookup. The price comes from the
// provider; a failed lookup aborts with ErrQuoteUnavailable and no state
// change. The position update and the transaction append share one commit:
// they succeed or fail together.
//
// Cost basis accumulates additively: an existing position gains
// price*shares on top of its running total; it is never recomputed as a
// per-share average.
func (s *Service) Buy(ctx context.Context, ticker string, shares float64) (*Result, error) {
	ticker = utils.NormalizeTicker(ticker)
	if shares <= 0 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidQuantity, shares)
	}

	price, err := s.resolvePrice(ctx, ticker)
	if err != nil {
		return nil, err
	}

	var result Result
	err = database.WithTransaction(s.db.Conn(), func(tx *sql.Tx) error {
		position, err := s.positions.GetByTickerTx(tx, ticker)
		if err != nil {
			return err
		}

		if position == nil {
			position = &portfolio.Position{Ticker: ticker}
		}
		position.SharesOwned += shares
		position.TotalCostBasis += price * shares

		if err := s.positions.UpsertTx(tx, *position); err != nil {
			return err
		}

		result.Transaction, err = s.transactions.AppendTx(tx, ledger.Transaction{
			Ticker:    ticker,
			Shares:    shares,
			Operation: ledger.OperationBuy,
			Price:     price,
		})
		if err != nil {
			return err
		}

		result.Position = position
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("ticker", ticker).
		Float64("shares", shares).
		Float64("price", price).
		Float64("shares_owned", result.Position.SharesOwned).
		Msg("Buy executed")

	return &result, nil
}

// Sell disposes of shares at the current market price.
//
// The position must hold at least the requested shares or the operation
// fails with ErrInsufficientShares and no state change. Cost basis is
// reduced by the sale proceeds at the current price, not by the
// proportional original cost: realized gains are not tracked separately and
// the remaining basis is an approximation. That is the engine's accounting
// policy and is load-bearing; callers and tests rely on it.
//
// A sell that brings the share count to exactly zero deletes the position.
func (s *Service) Sell(ctx context.Context, ticker string, shares float64) (*Result, error) {
	ticker = utils.NormalizeTicker(ticker)
	if shares <= 0 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidQuantity, shares)
	}

	price, err := s.resolvePrice(ctx, ticker)
	if err != nil {
		return nil, err
	}

	var result Result
	err = database.WithTransaction(s.db.Conn(), func(tx *sql.Tx) error {
		position, err := s.positions.GetByTickerTx(tx, ticker)
		if err != nil {
			return err
		}

		if position == nil || position.SharesOwned < shares {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientShares, ticker)
		}

		position.SharesOwned -= shares
		position.TotalCostBasis -= shares * price

		if position.SharesOwned == 0 {
			if err := s.positions.DeleteTx(tx, ticker); err != nil {
				return err
			}
			result.Removed = true
		} else {
			if err := s.positions.UpsertTx(tx, *position); err != nil {
				return err
			}
			result.Position = position
		}

		result.Transaction, err = s.transactions.AppendTx(tx, ledger.Transaction{
			Ticker:    ticker,
			Shares:    shares,
			Operation: ledger.OperationSell,
			Price:     price,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("ticker", ticker).
		Float64("shares", shares).
		Float64("price", price).
		Bool("removed", result.Removed).
		Msg("Sell executed")

	return &result, nil
}

// resolvePrice fetches the current quote for a ticker and validates that it
// carries a usable price. Any failure here surfaces as ErrQuoteUnavailable
// before the commit boundary opens.
func (s *Service) resolvePrice(ctx context.Context, ticker string) (float64, error) {
	quotes, err := s.quotes.GetQuotes(ctx, []string{ticker})
	if err != nil {
		// The provider wraps transport failures in ErrQuoteUnavailable
		// already; keep the chain intact either way.
		return 0, err
	}

	for _, q := range quotes {
		if utils.NormalizeTicker(q.Symbol) == ticker {
			if q.CurrentPrice <= 0 {
				return 0, fmt.Errorf("%w: no positive price for %s", domain.ErrQuoteUnavailable, ticker)
			}
			return q.CurrentPrice, nil
		}
	}

	return 0, fmt.Errorf("%w: no quote for %s", domain.ErrQuoteUnavailable, ticker)
}
