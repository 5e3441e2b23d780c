package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the payload for appending a ledger record.
// Shares may be negative (a sale). Amount is optional: when omitted it
// defaults to shares*price+commission. Commission defaults to zero.
type CreateTransactionRequest struct {
	Symbol     string           `json:"symbol"`
	Date       string           `json:"date"`
	Shares     decimal.Decimal  `json:"shares"`
	Price      decimal.Decimal  `json:"price"`
	Amount     *decimal.Decimal `json:"amount"`
	Commission *decimal.Decimal `json:"commission"`
}
