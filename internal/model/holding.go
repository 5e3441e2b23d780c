package model

import "github.com/shopspring/decimal"

// Holding is the derived net position for one ETF, recomputed on demand
// from the transaction ledger and never persisted.
//
// CostBasis is a simple running sum of signed transaction amounts, not a
// FIFO-matched basis. Invested counts purchase amounts only (transactions
// with positive shares); sells reduce shares and cost basis but do not
// reduce the capital-put-in figure.
type Holding struct {
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CostBasis decimal.Decimal `json:"costBasis"`
	Invested  decimal.Decimal `json:"invested"`
}
