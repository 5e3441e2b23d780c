package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response maps the raw JSON returned by the Yahoo Finance chart API.
// Only the fields the tracker consumes are declared: symbol metadata,
// timestamps and daily close prices.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
				LongName     string `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Quote is the resolved result of a price lookup: the latest close for the
// candidate ticker that actually returned data.
type Quote struct {
	// Symbol is the symbol as configured by the user (possibly TICKER@MARKET).
	Symbol string
	// Resolved is the Yahoo ticker the price was actually fetched from.
	Resolved string
	Price    decimal.Decimal
	AsOf     time.Time
}
