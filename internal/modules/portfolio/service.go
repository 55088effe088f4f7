package portfolio

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/domain"
)

// Service produces quote-enriched views of the portfolio.
type Service struct {
	positions *PositionRepository
	quotes    domain.QuoteProvider
	log       zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(positions *PositionRepository, quotes domain.QuoteProvider, log zerolog.Logger) *Service {
	return &Service{
		positions: positions,
		quotes:    quotes,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// List returns every held position with live valuation. A provider failure
// degrades gracefully: positions are still listed, valued at price 0.
func (s *Service) List(ctx context.Context) ([]Valuation, error) {
	positions, err := s.positions.GetAll()
	if err != nil {
		return nil, err
	}

	valuations := make([]Valuation, 0, len(positions))
	if len(positions) == 0 {
		return valuations, nil
	}

	quotesBySymbol := IndexQuotes(s.fetchQuotes(ctx, positions))
	for _, pos := range positions {
		valuations = append(valuations, ComputeValuation(pos, quotesBySymbol[pos.Ticker]))
	}

	return valuations, nil
}

// Status returns the aggregate portfolio summary. An empty portfolio yields
// the zero summary object, not an error.
func (s *Service) Status(ctx context.Context) (StatusSummary, error) {
	positions, err := s.positions.GetAll()
	if err != nil {
		return StatusSummary{}, err
	}

	if len(positions) == 0 {
		return StatusSummary{}, nil
	}

	return AggregateStatus(positions, s.fetchQuotes(ctx, positions)), nil
}

// fetchQuotes batch-fetches quotes for all position tickers. Provider
// failure is logged and treated as an empty batch.
func (s *Service) fetchQuotes(ctx context.Context, positions []Position) []domain.Quote {
	symbols := make([]string, 0, len(positions))
	for _, pos := range positions {
		symbols = append(symbols, pos.Ticker)
	}

	quotes, err := s.quotes.GetQuotes(ctx, symbols)
	if err != nil {
		s.log.Warn().Err(err).Strs("symbols", symbols).Msg("Quote fetch failed, valuing positions at 0")
		return nil
	}

	return quotes
}
