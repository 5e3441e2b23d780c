package model

import "github.com/shopspring/decimal"

// ETFMetrics holds the point-in-time valuation of a single ETF position.
// Price is nil when the price source supplied no quote for the symbol; the
// position is then excluded from value and weight figures but retained for
// audit. GainRate is nil when the cost basis is zero (e.g. fully divested).
type ETFMetrics struct {
	Symbol         string           `json:"symbol"`
	DisplayName    string           `json:"displayName"`
	TargetPercent  decimal.Decimal  `json:"targetPercent"`
	Shares         decimal.Decimal  `json:"shares"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Value          decimal.Decimal  `json:"value"`
	Weight         decimal.Decimal  `json:"weight"`
	CostBasis      decimal.Decimal  `json:"costBasis"`
	UnrealizedGain decimal.Decimal  `json:"unrealizedGain"`
	GainRate       *decimal.Decimal `json:"gainRate,omitempty"`
}

// PortfolioSnapshot is the derived valuation of all holdings using current
// prices. Computed fresh on every request; the engine holds no state between
// calls, so a snapshot is reproducible from its inputs.
type PortfolioSnapshot struct {
	ETFs []ETFMetrics `json:"etfs"`

	TotalValue      decimal.Decimal  `json:"totalValue"`
	TotalInvested   decimal.Decimal  `json:"totalInvested"`
	TotalReturn     decimal.Decimal  `json:"totalReturn"`
	TotalReturnRate *decimal.Decimal `json:"totalReturnRate,omitempty"`

	// MissingPrices lists held symbols the price source could not quote.
	// Informational: one stale ticker degrades its own row, not the snapshot.
	MissingPrices []string `json:"missingPrices,omitempty"`
}

// Metrics returns the per-ETF metrics for a symbol, or nil if absent.
func (s PortfolioSnapshot) Metrics(symbol string) *ETFMetrics {
	for i := range s.ETFs {
		if s.ETFs[i].Symbol == symbol {
			return &s.ETFs[i]
		}
	}
	return nil
}
