package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketfin/rocketfin/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func TestGetQuotes_ParsesResponse(t *testing.T) {
	var gotSymbols, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		gotAPIKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"quoteResponse": {
				"result": [
					{
						"symbol": "AAPL",
						"longName": "Apple Inc.",
						"bid": 231.1,
						"ask": 231.5,
						"regularMarketPrice": 231.41,
						"regularMarketChange": 0.84,
						"regularMarketChangePercent": 0.36
					},
					{
						"symbol": "MSFT",
						"shortName": "Microsoft",
						"regularMarketPrice": 420.0
					}
				],
				"error": null
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second, testLogger())
	quotes, err := client.GetQuotes(context.Background(), []string{"aapl", " msft "})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "AAPL,MSFT", gotSymbols)
	assert.Equal(t, "test-key", gotAPIKey)

	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "Apple Inc.", quotes[0].Name)
	assert.InDelta(t, 231.41, quotes[0].CurrentPrice, 1e-9)
	assert.InDelta(t, 231.1, quotes[0].Bid, 1e-9)

	// shortName fallback when longName is missing
	assert.Equal(t, "Microsoft", quotes[1].Name)
	assert.InDelta(t, 420.0, quotes[1].CurrentPrice, 1e-9)
}

func TestGetQuotes_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteResponse": {"result": [], "error": null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	quotes, err := client.GetQuotes(context.Background(), []string{"NOPE"})
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestGetQuotes_Non200IsQuoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	_, err := client.GetQuotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQuoteUnavailable))
}

func TestGetQuotes_UpstreamErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quoteResponse": {"result": [], "error": {"code": "Bad Request", "description": "Missing symbols"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, testLogger())
	_, err := client.GetQuotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQuoteUnavailable))
}

func TestGetQuotes_TimeoutIsQuoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"quoteResponse": {"result": [], "error": null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 20*time.Millisecond, testLogger())
	_, err := client.GetQuotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQuoteUnavailable))
}

func TestGetQuotes_NoSymbols(t *testing.T) {
	client := NewClient("http://unused.invalid", "", time.Second, testLogger())
	quotes, err := client.GetQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, quotes)
}
