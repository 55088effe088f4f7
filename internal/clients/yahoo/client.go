// Package yahoo provides client functionality for the Yahoo Finance quote API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/domain"
	"github.com/rocketfin/rocketfin/internal/utils"
)

// Client for the Yahoo Finance v6 quote endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	log        zerolog.Logger
}

// Compile-time check that Client implements domain.QuoteProvider
var _ domain.QuoteProvider = (*Client)(nil)

// NewClient creates a new Yahoo Finance client. timeout bounds every
// provider call so a stalled upstream surfaces as a quote failure instead
// of blocking the request.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

// quoteResponse mirrors the upstream payload shape
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
	Bid                        float64 `json:"bid"`
	Ask                        float64 `json:"ask"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
}

// GetQuotes fetches current quotes for the given symbols in one batch call.
// Symbols are normalized and comma-joined into a single request. A transport
// or upstream failure is reported as an error wrapping domain.ErrQuoteUnavailable;
// a response that matched none of the requested symbols yields an empty slice.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if n := utils.NormalizeTicker(s); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + "?symbols=" + url.QueryEscape(strings.Join(normalized, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Strs("symbols", normalized).Msg("Quote request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().
			Int("status", resp.StatusCode).
			Strs("symbols", normalized).
			Msg("Quote endpoint returned non-200 status")
		return nil, fmt.Errorf("%w: upstream returned status %d", domain.ErrQuoteUnavailable, resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrQuoteUnavailable, err)
	}

	if upstreamErr := payload.QuoteResponse.Error; upstreamErr != nil {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrQuoteUnavailable, upstreamErr.Description, upstreamErr.Code)
	}

	quotes := make([]domain.Quote, 0, len(payload.QuoteResponse.Result))
	for _, r := range payload.QuoteResponse.Result {
		symbol := utils.NormalizeTicker(r.Symbol)
		if symbol == "" {
			continue
		}

		name := r.LongName
		if name == "" {
			name = r.ShortName
		}

		quotes = append(quotes, domain.Quote{
			Symbol:        symbol,
			Name:          name,
			CurrentPrice:  r.RegularMarketPrice,
			Bid:           r.Bid,
			Ask:           r.Ask,
			ChangeValue:   r.RegularMarketChange,
			ChangePercent: r.RegularMarketChangePercent,
		})
	}

	c.log.Debug().
		Strs("symbols", normalized).
		Int("quotes", len(quotes)).
		Msg("Fetched quotes")

	return quotes, nil
}
