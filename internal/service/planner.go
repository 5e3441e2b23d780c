package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// targetTolerance is how far the sum of target percentages may deviate
// from 100 before planning refuses to run.
var (
	targetTolerance = decimal.NewFromFloat(0.01)
	hundred         = decimal.NewFromInt(100)
)

// buyState tracks one ETF's allocation while the plan is being built.
type buyState struct {
	etf    model.ETF
	value  decimal.Decimal
	gap    decimal.Decimal
	price  decimal.Decimal
	priced bool
	shares decimal.Decimal
	amount decimal.Decimal
}

// BuildPlan distributes investable cash across underweight ETFs under
// discrete-unit constraints. Pure function; deterministic for equal inputs.
//
// The algorithm is greedy water-filling with discrete rounding:
//
//  1. Each ETF's ideal post-investment value is target% of
//     (totalValue + cash); its gap is the shortfall to that ideal,
//     floored at zero. ETFs at or above target receive nothing.
//  2. Cash is allocated proportionally to gaps, converted to shares at the
//     current price and floored to the ETF's minimum increment so a rounded
//     quantity never costs more than its allotment.
//  3. The remainder left by flooring is redistributed in whole increments,
//     largest gap first (ties broken by symbol order): one pass filling
//     residual gaps, then one greedy pass for whatever rounding losses are
//     left. Cash that no ETF can absorb is reported as leftover, never
//     dropped.
//
// Only purchases are ever suggested. A missing price blocks planning only
// when the ETF is underweight; fully weighted ETFs without prices are
// ignored here (the valuator already reported them).
func BuildPlan(snapshot model.PortfolioSnapshot, etfs []model.ETF, cash decimal.Decimal) (model.RebalancePlan, error) {
	if cash.IsNegative() {
		return model.RebalancePlan{}, fmt.Errorf("%w: %s", apperrors.ErrNegativeCash, cash)
	}
	if err := validateTargets(etfs); err != nil {
		return model.RebalancePlan{}, err
	}

	plan := model.RebalancePlan{
		Lines:        []model.PlanLine{},
		CashToInvest: cash,
		PlannedSpend: decimal.Zero,
		LeftoverCash: cash,
	}
	if cash.IsZero() {
		plan.LeftoverCash = decimal.Zero
		return plan, nil
	}

	totalAfter := snapshot.TotalValue.Add(cash)

	states := make([]*buyState, 0, len(etfs))
	sumGap := decimal.Zero
	var unpriced []string

	for _, etf := range etfs {
		symbol := model.NormalizeSymbol(etf.Symbol)
		state := &buyState{
			etf:    etf,
			value:  decimal.Zero,
			shares: decimal.Zero,
			amount: decimal.Zero,
		}
		state.etf.Symbol = symbol

		if metrics := snapshot.Metrics(symbol); metrics != nil {
			state.value = metrics.Value
			if metrics.Price != nil {
				state.price = *metrics.Price
				state.priced = state.price.IsPositive()
			}
		}

		targetValue := etf.TargetPercent.Div(hundred).Mul(totalAfter)
		state.gap = targetValue.Sub(state.value)
		if state.gap.IsNegative() {
			state.gap = decimal.Zero
		}

		if state.gap.IsPositive() && !state.priced {
			unpriced = append(unpriced, symbol)
		}

		sumGap = sumGap.Add(state.gap)
		states = append(states, state)
	}

	if sumGap.IsZero() {
		// Already at or above target everywhere: empty plan, all cash back.
		return plan, nil
	}
	if len(unpriced) > 0 {
		sort.Strings(unpriced)
		return model.RebalancePlan{}, fmt.Errorf("%w: %s",
			apperrors.ErrMissingPriceForUnderweight, strings.Join(unpriced, ", "))
	}

	// Proportional allocation, floored to each ETF's increment.
	spent := decimal.Zero
	for _, state := range states {
		if !state.gap.IsPositive() {
			continue
		}
		raw := cash.Mul(state.gap).Div(sumGap)
		shares, err := state.etf.FloorToIncrement(raw.Div(state.price))
		if err != nil {
			return model.RebalancePlan{}, err
		}
		state.shares = shares
		state.amount = shares.Mul(state.price)
		spent = spent.Add(state.amount)
	}

	remainder := cash.Sub(spent)
	remainder = redistribute(states, remainder)

	plan.PlannedSpend = cash.Sub(remainder)
	plan.LeftoverCash = remainder

	totalAfterSpend := snapshot.TotalValue.Add(plan.PlannedSpend)
	for _, state := range states {
		line := model.PlanLine{
			Symbol:    state.etf.Symbol,
			BuyShares: state.shares,
			BuyAmount: state.amount,
		}
		if totalAfterSpend.IsPositive() {
			line.ResultingWeight = state.value.Add(state.amount).Div(totalAfterSpend)
		} else {
			line.ResultingWeight = decimal.Zero
		}
		plan.Lines = append(plan.Lines, line)
	}

	sort.Slice(plan.Lines, func(i, j int) bool {
		return plan.Lines[i].Symbol < plan.Lines[j].Symbol
	})

	return plan, nil
}

// redistribute places the rounding remainder in whole minimum increments.
// Candidates are visited largest gap first, symbol order breaking ties;
// zero-gap ETFs never receive anything. The first pass tops each candidate
// up to its residual gap, the second greedily drains what is left. Returns
// the cash no candidate could absorb.
func redistribute(states []*buyState, remainder decimal.Decimal) decimal.Decimal {
	candidates := make([]*buyState, 0, len(states))
	for _, state := range states {
		if state.gap.IsPositive() && state.priced {
			candidates = append(candidates, state)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].gap.Equal(candidates[j].gap) {
			return candidates[i].gap.GreaterThan(candidates[j].gap)
		}
		return candidates[i].etf.Symbol < candidates[j].etf.Symbol
	})

	for _, c := range candidates {
		incCost := c.etf.MinIncrement().Mul(c.price)
		if incCost.GreaterThan(remainder) {
			continue
		}
		residual := c.gap.Sub(c.amount)
		if !residual.IsPositive() {
			continue
		}
		n := decimal.Min(
			remainder.Div(incCost).Floor(),
			residual.Div(incCost).Ceil(),
		)
		if n.IsPositive() {
			remainder = grant(c, n, incCost, remainder)
		}
	}

	for _, c := range candidates {
		incCost := c.etf.MinIncrement().Mul(c.price)
		if incCost.GreaterThan(remainder) {
			continue
		}
		if n := remainder.Div(incCost).Floor(); n.IsPositive() {
			remainder = grant(c, n, incCost, remainder)
		}
	}

	return remainder
}

func grant(c *buyState, n, incCost, remainder decimal.Decimal) decimal.Decimal {
	c.shares = c.shares.Add(n.Mul(c.etf.MinIncrement()))
	c.amount = c.amount.Add(n.Mul(incCost))
	return remainder.Sub(n.Mul(incCost))
}

// validateTargets checks that the configured target percentages sum to
// 100 within tolerance.
func validateTargets(etfs []model.ETF) error {
	sum := decimal.Zero
	for _, etf := range etfs {
		sum = sum.Add(etf.TargetPercent)
	}
	if sum.Sub(hundred).Abs().GreaterThan(targetTolerance) {
		return fmt.Errorf("%w: sum is %s", apperrors.ErrInvalidTargets, sum)
	}
	return nil
}
