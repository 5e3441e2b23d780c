package request

import "github.com/shopspring/decimal"

// PlanRequest is the payload for computing a rebalance plan.
type PlanRequest struct {
	CashToInvest decimal.Decimal `json:"cashToInvest"`
}
