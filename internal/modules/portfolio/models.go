// Package portfolio maintains the aggregated holdings and the valuation math
// layered on top of live quotes.
package portfolio

import "time"

// Position is the mutable aggregate holding for one ticker. It is derived
// from the transaction log but stored denormalized for O(1) lookup. A
// position only exists while shares are held: the first buy creates it and
// the sell that brings shares_owned to exactly zero deletes it.
type Position struct {
	Ticker string `json:"ticker"`
	// SharesOwned is always non-negative; the store enforces it.
	SharesOwned float64 `json:"shares_owned"`
	// TotalCostBasis is the running total paid for currently-held shares.
	// It is additive, not a per-share average: buys add price*shares, sells
	// subtract the sale proceeds at the current price.
	TotalCostBasis float64   `json:"total_cost_basis"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Valuation is one position enriched with live market data.
type Valuation struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	SharesOwned          float64 `json:"shares_owned"`
	TotalCostBasis       float64 `json:"total_cost_basis"`
	CurrentMarketValue   float64 `json:"current_market_value"`
	UnrealizedProfitLoss float64 `json:"unrealized_profit_loss"`
	UnrealizedReturnRate float64 `json:"unrealized_return_rate"`
}

// StatusSummary aggregates valuation across the whole portfolio. The total
// return rate is computed once from the summed totals, not averaged across
// positions.
type StatusSummary struct {
	TotalSharesOwned          float64 `json:"total_shares_owned"`
	TotalCostBasis            float64 `json:"total_cost_basis"`
	TotalCurrentMarketValue   float64 `json:"total_current_market_value"`
	TotalUnrealizedProfitLoss float64 `json:"total_unrealized_profit_loss"`
	TotalUnrealizedReturnRate float64 `json:"total_unrealized_return_rate"`
}
