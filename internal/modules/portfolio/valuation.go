package portfolio

import (
	"math"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/utils"
)

// ComputeValuation derives market value and unrealized P/L for one position
// from a quote. quote may be nil when the batch response had no entry for
// the ticker; the price then degrades silently to 0.0 rather than erroring,
// so a provider hiccup never hides the position itself.
//
// The return rate is defined as 0 when the cost basis is non-positive. That
// is a floor policy to avoid dividing by zero, not a real 0% return.
func ComputeValuation(position Position, quote *domain.Quote) Valuation {
	currentPrice := 0.0
	name := "Unknown"
	if quote != nil {
		currentPrice = quote.CurrentPrice
		if quote.Name != "" {
			name = quote.Name
		}
	}

	marketValue := currentPrice * position.SharesOwned
	profitLoss := marketValue - position.TotalCostBasis

	returnRate := 0.0
	if position.TotalCostBasis > 0 {
		returnRate = roundRate(profitLoss / position.TotalCostBasis * 100)
	}

	return Valuation{
		Ticker:               position.Ticker,
		Name:                 name,
		SharesOwned:          position.SharesOwned,
		TotalCostBasis:       position.TotalCostBasis,
		CurrentMarketValue:   marketValue,
		UnrealizedProfitLoss: profitLoss,
		UnrealizedReturnRate: returnRate,
	}
}

// AggregateStatus sums valuation across all positions. The total return rate
// is computed once from the summed totals with the same zero-basis floor
// policy as ComputeValuation. An empty portfolio yields the zero summary.
func AggregateStatus(positions []Position, quotes []domain.Quote) StatusSummary {
	quotesBySymbol := IndexQuotes(quotes)

	var summary StatusSummary
	for _, pos := range positions {
		v := ComputeValuation(pos, quotesBySymbol[pos.Ticker])
		summary.TotalSharesOwned += v.SharesOwned
		summary.TotalCostBasis += v.TotalCostBasis
		summary.TotalCurrentMarketValue += v.CurrentMarketValue
		summary.TotalUnrealizedProfitLoss += v.UnrealizedProfitLoss
	}

	if summary.TotalCostBasis > 0 {
		summary.TotalUnrealizedReturnRate = roundRate(summary.TotalUnrealizedProfitLoss / summary.TotalCostBasis * 100)
	}

	return summary
}

// IndexQuotes builds a symbol-keyed lookup over a batch quote response.
// Symbols are normalized so the match is exact but case-insensitive.
func IndexQuotes(quotes []domain.Quote) map[string]*domain.Quote {
	index := make(map[string]*domain.Quote, len(quotes))
	for i := range quotes {
		index[utils.NormalizeTicker(quotes[i].Symbol)] = &quotes[i]
	}
	return index
}

// roundRate rounds a percentage to 2 decimal places.
func roundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}
