package domain

import "context"

// QuoteProvider fetches current market quotes for one or more tickers.
// Implementations must preserve the symbol-to-quote mapping via exact,
// case-insensitive symbol match and must respect context cancellation so
// a slow upstream cannot block a request indefinitely.
//
// A transport or upstream failure is reported as an error wrapping
// ErrQuoteUnavailable. An upstream response that simply matched none of the
// requested symbols yields an empty slice and a nil error; callers decide
// whether that means ErrQuoteUnavailable (buy/sell price resolution) or
// ErrInstrumentNotFound (search).
type QuoteProvider interface {
	GetQuotes(ctx context.Context, symbols []string) ([]Quote, error)
}
