package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfin/rocketfin/internal/domain"
)

// fakeQuoteProvider serves canned quotes or a canned error.
type fakeQuoteProvider struct {
	quotes []domain.Quote
	err    error
	calls  [][]string
}

func (f *fakeQuoteProvider) GetQuotes(_ context.Context, symbols []string) ([]domain.Quote, error) {
	f.calls = append(f.calls, symbols)
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func TestServiceList(t *testing.T) {
	repo, db := testRepo(t)
	upsert(t, db, repo, Position{Ticker: "AAPL", SharesOwned: 10, TotalCostBasis: 1000})
	upsert(t, db, repo, Position{Ticker: "MSFT", SharesOwned: 4, TotalCostBasis: 1000})

	provider := &fakeQuoteProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 120},
		{Symbol: "MSFT", Name: "Microsoft Corporation", CurrentPrice: 200},
	}}
	svc := NewService(repo, provider, zerolog.New(nil).Level(zerolog.Disabled))

	valuations, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, valuations, 2)

	assert.Equal(t, "Apple Inc.", valuations[0].Name)
	assert.InDelta(t, 1200.0, valuations[0].CurrentMarketValue, 1e-9)
	assert.InDelta(t, 800.0, valuations[1].CurrentMarketValue, 1e-9)

	require.Len(t, provider.calls, 1, "one batch call for all tickers")
	assert.Equal(t, []string{"AAPL", "MSFT"}, provider.calls[0])
}

func TestServiceList_ProviderFailureDegrades(t *testing.T) {
	repo, db := testRepo(t)
	upsert(t, db, repo, Position{Ticker: "AAPL", SharesOwned: 10, TotalCostBasis: 1000})

	provider := &fakeQuoteProvider{err: errors.New("upstream down")}
	svc := NewService(repo, provider, zerolog.New(nil).Level(zerolog.Disabled))

	valuations, err := svc.List(context.Background())
	require.NoError(t, err, "provider failure must not fail the listing")
	require.Len(t, valuations, 1)
	assert.InDelta(t, 0.0, valuations[0].CurrentMarketValue, 1e-9)
	assert.Equal(t, "Unknown", valuations[0].Name)
}

func TestServiceList_MissingQuoteInBatch(t *testing.T) {
	repo, db := testRepo(t)
	upsert(t, db, repo, Position{Ticker: "AAPL", SharesOwned: 10, TotalCostBasis: 1000})
	upsert(t, db, repo, Position{Ticker: "MSFT", SharesOwned: 4, TotalCostBasis: 1000})

	// Batch response only covers AAPL; MSFT silently values at 0.
	provider := &fakeQuoteProvider{quotes: []domain.Quote{{Symbol: "AAPL", CurrentPrice: 100}}}
	svc := NewService(repo, provider, zerolog.New(nil).Level(zerolog.Disabled))

	valuations, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, valuations, 2)
	assert.InDelta(t, 1000.0, valuations[0].CurrentMarketValue, 1e-9)
	assert.InDelta(t, 0.0, valuations[1].CurrentMarketValue, 1e-9)
}

func TestServiceList_EmptyPortfolioSkipsProvider(t *testing.T) {
	repo, _ := testRepo(t)
	provider := &fakeQuoteProvider{}
	svc := NewService(repo, provider, zerolog.New(nil).Level(zerolog.Disabled))

	valuations, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, valuations)
	assert.Empty(t, provider.calls, "no quote call for an empty portfolio")
}

func TestServiceStatus(t *testing.T) {
	repo, db := testRepo(t)
	upsert(t, db, repo, Position{Ticker: "AAPL", SharesOwned: 10, TotalCostBasis: 1000})
	upsert(t, db, repo, Position{Ticker: "MSFT", SharesOwned: 4, TotalCostBasis: 1000})

	provider := &fakeQuoteProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", CurrentPrice: 120},
		{Symbol: "MSFT", CurrentPrice: 200},
	}}
	svc := NewService(repo, provider, zerolog.New(nil).Level(zerolog.Disabled))

	summary, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, summary.TotalCostBasis, 1e-9)
	assert.InDelta(t, 2000.0, summary.TotalCurrentMarketValue, 1e-9)
	assert.InDelta(t, 0.0, summary.TotalUnrealizedProfitLoss, 1e-9)
	assert.InDelta(t, 0.0, summary.TotalUnrealizedReturnRate, 1e-9)
}

func TestServiceStatus_EmptyPortfolio(t *testing.T) {
	repo, _ := testRepo(t)
	svc := NewService(repo, &fakeQuoteProvider{}, zerolog.New(nil).Level(zerolog.Disabled))

	summary, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSummary{}, summary)
}
