package model

import "github.com/shopspring/decimal"

// PlanLine is one suggested purchase in a rebalance plan. BuyShares is
// always an exact multiple of the ETF's minimum increment and never
// negative: the planner only recommends purchases.
type PlanLine struct {
	Symbol          string          `json:"symbol"`
	BuyShares       decimal.Decimal `json:"buyShares"`
	BuyAmount       decimal.Decimal `json:"buyAmount"`
	ResultingWeight decimal.Decimal `json:"resultingWeight"`
}

// RebalancePlan is the discrete buy plan for a given cash amount.
// PlannedSpend + LeftoverCash always equals CashToInvest; leftover cash is
// whatever the discrete rounding constraints could not place, reported
// rather than silently dropped.
type RebalancePlan struct {
	Lines        []PlanLine      `json:"lines"`
	CashToInvest decimal.Decimal `json:"cashToInvest"`
	PlannedSpend decimal.Decimal `json:"plannedSpend"`
	LeftoverCash decimal.Decimal `json:"leftoverCash"`
}

// Line returns the plan line for a symbol, or nil if the plan contains none.
func (p RebalancePlan) Line(symbol string) *PlanLine {
	for i := range p.Lines {
		if p.Lines[i].Symbol == symbol {
			return &p.Lines[i]
		}
	}
	return nil
}
