// Package instruments provides instrument search: a live quote merged with
// the caller's current holding of that instrument.
package instruments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/modules/portfolio"
	"github.com/rocketfin/rocketfin/internal/utils"
)

// PositionLookup is the read-only slice of the position store the search
// needs.
type PositionLookup interface {
	GetByTicker(ticker string) (*portfolio.Position, error)
}

// Compile-time check that the position repository satisfies the contract
var _ PositionLookup = (*portfolio.PositionRepository)(nil)

// Instrument is a quote enriched with the shares currently held.
type Instrument struct {
	domain.Quote
	SharesOwned float64 `json:"shares_owned"`
}

// Service looks up instruments
type Service struct {
	quotes    domain.QuoteProvider
	positions PositionLookup
	log       zerolog.Logger
}

// NewService creates a new instruments service
func NewService(quotes domain.QuoteProvider, positions PositionLookup, log zerolog.Logger) *Service {
	return &Service{
		quotes:    quotes,
		positions: positions,
		log:       log.With().Str("service", "instruments").Logger(),
	}
}

// Search fetches the quote for one ticker and merges in the owned share
// count. A provider failure propagates as ErrQuoteUnavailable; an upstream
// response with no match for the ticker is ErrInstrumentNotFound.
func (s *Service) Search(ctx context.Context, ticker string) (*Instrument, error) {
	ticker = utils.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: empty ticker", domain.ErrInstrumentNotFound)
	}

	quotes, err := s.quotes.GetQuotes(ctx, []string{ticker})
	if err != nil {
		return nil, err
	}

	var match *domain.Quote
	for i := range quotes {
		if utils.NormalizeTicker(quotes[i].Symbol) == ticker {
			match = &quotes[i]
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInstrumentNotFound, ticker)
	}

	instrument := &Instrument{Quote: *match}

	position, err := s.positions.GetByTicker(ticker)
	if err != nil {
		return nil, err
	}
	if position != nil {
		instrument.SharesOwned = position.SharesOwned
	}

	return instrument, nil
}
