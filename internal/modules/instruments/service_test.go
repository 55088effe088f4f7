package instruments

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/modules/portfolio"
)

type fakeQuoteProvider struct {
	quotes []domain.Quote
	err    error
}

func (f *fakeQuoteProvider) GetQuotes(_ context.Context, _ []string) ([]domain.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

type fakePositionLookup struct {
	positions map[string]*portfolio.Position
	err       error
}

func (f *fakePositionLookup) GetByTicker(ticker string) (*portfolio.Position, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.positions[ticker], nil
}

func newTestService(quotes *fakeQuoteProvider, positions *fakePositionLookup) *Service {
	if positions == nil {
		positions = &fakePositionLookup{}
	}
	return NewService(quotes, positions, zerolog.Nop())
}

func TestSearchMergesSharesOwned(t *testing.T) {
	provider := &fakeQuoteProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 150.0, Bid: 149.9, Ask: 150.1},
	}}
	positions := &fakePositionLookup{positions: map[string]*portfolio.Position{
		"AAPL": {Ticker: "AAPL", SharesOwned: 12, TotalCostBasis: 1500},
	}}

	svc := newTestService(provider, positions)
	instrument, err := svc.Search(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", instrument.Symbol)
	assert.Equal(t, "Apple Inc.", instrument.Name)
	assert.Equal(t, 150.0, instrument.CurrentPrice)
	assert.Equal(t, 12.0, instrument.SharesOwned)
}

func TestSearchNoHoldingReportsZeroShares(t *testing.T) {
	provider := &fakeQuoteProvider{quotes: []domain.Quote{
		{Symbol: "MSFT", Name: "Microsoft Corporation", CurrentPrice: 410.0},
	}}

	svc := newTestService(provider, nil)
	instrument, err := svc.Search(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, 0.0, instrument.SharesOwned)
}

func TestSearchUnknownTickerIsNotFound(t *testing.T) {
	provider := &fakeQuoteProvider{quotes: []domain.Quote{}}

	svc := newTestService(provider, nil)
	_, err := svc.Search(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
}

func TestSearchEmptyTickerIsNotFound(t *testing.T) {
	svc := newTestService(&fakeQuoteProvider{}, nil)
	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
}

func TestSearchProviderFailurePropagates(t *testing.T) {
	provider := &fakeQuoteProvider{err: fmt.Errorf("%w: upstream down", domain.ErrQuoteUnavailable)}

	svc := newTestService(provider, nil)
	_, err := svc.Search(context.Background(), "AAPL")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestSearchPositionLookupFailurePropagates(t *testing.T) {
	provider := &fakeQuoteProvider{quotes: []domain.Quote{{Symbol: "AAPL", CurrentPrice: 1}}}
	positions := &fakePositionLookup{err: errors.New("db closed")}

	svc := newTestService(provider, positions)
	_, err := svc.Search(context.Background(), "AAPL")
	assert.Error(t, err)
}
