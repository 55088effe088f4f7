package domain

import "errors"

// Sentinel errors for business rule violations. Handlers map these to HTTP
// status codes with errors.Is.
var (
	// ErrInvalidQuantity indicates a trade request with a non-positive
	// share count.
	ErrInvalidQuantity = errors.New("share quantity must be positive")

	// ErrInsufficientShares indicates a sell request for more shares than
	// the position holds.
	ErrInsufficientShares = errors.New("insufficient shares owned")

	// ErrQuoteUnavailable indicates the market data provider could not
	// supply a usable price.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrInstrumentNotFound indicates the searched ticker matched no
	// instrument upstream.
	ErrInstrumentNotFound = errors.New("instrument not found")
)
