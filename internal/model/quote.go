package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a fetched price for one symbol at one point in time.
// Quotes are recorded on every successful fetch as an audit trail; staleness
// policy belongs to the price source, not the valuation core.
type PriceQuote struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
