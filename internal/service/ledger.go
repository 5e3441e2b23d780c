package service

import (
	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// AggregateHoldings folds the transaction ledger into current per-symbol
// positions. Pure function over the input sequence: no I/O, no state.
//
// Net shares and cost basis are signed running sums over the history in
// the order given (callers pass transactions in timestamp order; sums are
// order-independent today, but the stable order is what a future FIFO
// cost-basis extension would rely on). Invested counts purchase amounts
// only — transactions with positive shares — mirroring "capital put in"
// rather than net cash flow.
//
// Symbols whose positions net out to zero stay in the result with zero
// shares: they carry no valuation weight but remain available for audit
// and history queries.
func AggregateHoldings(transactions []model.Transaction) map[string]model.Holding {
	holdings := make(map[string]model.Holding)

	for _, tx := range transactions {
		symbol := model.NormalizeSymbol(tx.Symbol)
		h, ok := holdings[symbol]
		if !ok {
			h = model.Holding{
				Symbol:    symbol,
				Shares:    decimal.Zero,
				CostBasis: decimal.Zero,
				Invested:  decimal.Zero,
			}
		}

		h.Shares = h.Shares.Add(tx.Shares)
		h.CostBasis = h.CostBasis.Add(tx.Amount)
		if tx.Shares.IsPositive() {
			h.Invested = h.Invested.Add(tx.Amount)
		}

		holdings[symbol] = h
	}

	return holdings
}
