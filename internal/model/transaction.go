package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// amountTolerance is how far a recorded transaction amount may drift from
// shares*price+commission before the ledger flags it as suspicious.
var amountTolerance = decimal.NewFromFloat(0.01)

// Transaction is an immutable ledger record. Shares are signed: positive
// for buys, negative for sells. The ledger is append-only; holdings are
// always recomputed from the full history, never mutated in place.
type Transaction struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Date       time.Time       `json:"date"`
	Shares     decimal.Decimal `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	Commission decimal.Decimal `json:"commission"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// ExpectedAmount returns shares*price+commission, the amount the record
// should carry if it was entered consistently.
func (t Transaction) ExpectedAmount() decimal.Decimal {
	return t.Shares.Mul(t.Price).Add(t.Commission)
}

// AmountMismatch reports whether the recorded amount deviates from
// shares*price+commission beyond tolerance. The event records what the user
// entered, so a mismatch is surfaced as a warning, never rejected.
func (t Transaction) AmountMismatch() (decimal.Decimal, bool) {
	diff := t.Amount.Sub(t.ExpectedAmount())
	return diff, diff.Abs().GreaterThan(amountTolerance)
}
