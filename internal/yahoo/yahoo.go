package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client defines the contract toward the market-data provider: one current
// price per symbol, or an error for that symbol alone. Batch fetching and
// partial-failure handling live in the price service; implementations only
// need to answer for a single symbol.
type Client interface {
	FetchQuote(ctx context.Context, symbol string) (Quote, error)
}

// FinanceClient fetches prices from the Yahoo Finance chart API. Configured
// symbols may carry an @MARKET suffix; the client tries the resolver's
// candidate tickers in order until one returns data.
type FinanceClient struct {
	httpClient *http.Client
	resolver   *Resolver
}

// NewFinanceClient creates a Yahoo Finance client. The overrides map
// extends the built-in market-code resolution (see NewResolver).
func NewFinanceClient(overrides map[string][]string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		resolver:   NewResolver(overrides),
	}
}

// FetchQuote returns the latest available daily close for a configured
// symbol. Candidates that return no data are skipped; the error is returned
// only when every candidate fails.
func (c *FinanceClient) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
	var lastErr error

	for _, candidate := range c.resolver.Candidates(symbol) {
		quote, err := c.fetchCandidate(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		quote.Symbol = symbol
		return quote, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no candidates for symbol %s", symbol)
	}
	return Quote{}, fmt.Errorf("no price for %s: %w", symbol, lastErr)
}

func (c *FinanceClient) fetchCandidate(ctx context.Context, ticker string) (Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", ticker)

	response, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for ticker %s", ticker)
	}

	result := response.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return Quote{}, fmt.Errorf("no price data returned for ticker %s", ticker)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return Quote{}, fmt.Errorf("no close prices returned for ticker %s", ticker)
	}

	closes := result.Indicators.Quote[0].Close
	last := len(closes) - 1
	if len(result.Timestamp) < len(closes) {
		return Quote{}, fmt.Errorf("mismatched data lengths for ticker %s", ticker)
	}
	if closes[last] <= 0 {
		return Quote{}, fmt.Errorf("non-positive close for ticker %s", ticker)
	}

	return Quote{
		Resolved: ticker,
		Price:    decimal.NewFromFloat(closes[last]),
		AsOf:     time.Unix(result.Timestamp[last], 0).UTC(),
	}, nil
}

// queryYahoo executes a chart API request. The User-Agent header mimics a
// browser; Yahoo rejects the default Go client string.
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
