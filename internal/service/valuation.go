package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// Valuate combines holdings with current prices into a portfolio snapshot.
// Pure function: the snapshot is reproducible from its inputs, and nothing
// is cached between calls.
//
// A held position (shares > 0) without a price degrades gracefully: the
// symbol lands in MissingPrices and contributes nothing to totals or
// weights, but its row is kept so one stale ticker never blocks the rest.
// All amounts are single-currency; no conversion is performed.
func Valuate(etfs []model.ETF, holdings map[string]model.Holding, prices map[string]decimal.Decimal) model.PortfolioSnapshot {
	snapshot := model.PortfolioSnapshot{
		TotalValue:    decimal.Zero,
		TotalInvested: decimal.Zero,
	}

	for _, etf := range etfs {
		symbol := model.NormalizeSymbol(etf.Symbol)
		holding := holdings[symbol]

		metrics := model.ETFMetrics{
			Symbol:        symbol,
			DisplayName:   etf.DisplayName,
			TargetPercent: etf.TargetPercent,
			Shares:        holding.Shares,
			Value:         decimal.Zero,
			Weight:        decimal.Zero,
			CostBasis:     holding.CostBasis,
		}

		price, priced := prices[symbol]
		if priced {
			p := price
			metrics.Price = &p
			metrics.Value = holding.Shares.Mul(price)
			metrics.UnrealizedGain = metrics.Value.Sub(holding.CostBasis)
			if !holding.CostBasis.IsZero() {
				rate := metrics.UnrealizedGain.Div(holding.CostBasis)
				metrics.GainRate = &rate
			}
		} else if holding.Shares.IsPositive() {
			snapshot.MissingPrices = append(snapshot.MissingPrices, symbol)
		}

		snapshot.TotalValue = snapshot.TotalValue.Add(metrics.Value)
		snapshot.TotalInvested = snapshot.TotalInvested.Add(holding.Invested)
		snapshot.ETFs = append(snapshot.ETFs, metrics)
	}

	// Weights need the final total, so they are a second pass. A zero total
	// (empty or fully unpriced portfolio) leaves every weight at zero.
	if snapshot.TotalValue.IsPositive() {
		for i := range snapshot.ETFs {
			snapshot.ETFs[i].Weight = snapshot.ETFs[i].Value.Div(snapshot.TotalValue)
		}
	}

	snapshot.TotalReturn = snapshot.TotalValue.Sub(snapshot.TotalInvested)
	if !snapshot.TotalInvested.IsZero() {
		rate := snapshot.TotalReturn.Div(snapshot.TotalInvested)
		snapshot.TotalReturnRate = &rate
	}

	sort.Slice(snapshot.ETFs, func(i, j int) bool {
		return snapshot.ETFs[i].Symbol < snapshot.ETFs[j].Symbol
	})
	sort.Strings(snapshot.MissingPrices)

	return snapshot
}
