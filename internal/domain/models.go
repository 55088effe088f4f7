// Package domain holds the shared domain types of the portfolio tracker.
// It is dependency-free: no database, HTTP or provider imports.
package domain

// Quote is a point-in-time market snapshot for one instrument. Quotes are
// fetched on demand from the provider and never persisted.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	Bid           float64 `json:"bid"`
	Ask           float64 `json:"ask"`
	ChangeValue   float64 `json:"change_value"`
	ChangePercent float64 `json:"change_percent"`
}
