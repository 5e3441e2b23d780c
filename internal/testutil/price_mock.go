package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/yahoo"
)

// MockPriceClient is a mock implementation of yahoo.Client for testing.
// It returns predefined quotes per symbol instead of making API calls,
// and is safe for the price service's concurrent fetching.
type MockPriceClient struct {
	mu sync.Mutex

	quotes map[string]yahoo.Quote
	errs   map[string]error

	// FetchCount tracks how many times FetchQuote was called.
	FetchCount int
}

// NewMockPriceClient creates a mock price client with no quotes configured.
// Unconfigured symbols return an error, matching a price source that has no
// data for them.
func NewMockPriceClient() *MockPriceClient {
	return &MockPriceClient{
		quotes: map[string]yahoo.Quote{},
		errs:   map[string]error{},
	}
}

// WithQuote configures the price returned for a symbol. The resolved ticker
// defaults to the symbol itself.
func (m *MockPriceClient) WithQuote(symbol, price string) *MockPriceClient {
	m.quotes[symbol] = yahoo.Quote{
		Symbol:   symbol,
		Resolved: symbol,
		Price:    decimal.RequireFromString(price),
		AsOf:     time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
	}
	return m
}

// WithResolvedQuote configures a quote whose winning candidate ticker
// differs from the configured symbol.
func (m *MockPriceClient) WithResolvedQuote(symbol, resolved, price string) *MockPriceClient {
	m.WithQuote(symbol, price)
	q := m.quotes[symbol]
	q.Resolved = resolved
	m.quotes[symbol] = q
	return m
}

// WithError configures FetchQuote to fail for a symbol.
func (m *MockPriceClient) WithError(symbol string, err error) *MockPriceClient {
	m.errs[symbol] = err
	return m
}

// FetchQuote returns the configured quote or error for the symbol.
func (m *MockPriceClient) FetchQuote(_ context.Context, symbol string) (yahoo.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCount++

	if err, ok := m.errs[symbol]; ok {
		return yahoo.Quote{}, err
	}
	if quote, ok := m.quotes[symbol]; ok {
		return quote, nil
	}
	return yahoo.Quote{}, fmt.Errorf("no price for %s: not configured in mock", symbol)
}
