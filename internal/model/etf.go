package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
)

// FractionalPlaces is the share precision used for ETFs that support
// fractional shares. Non-fractionable ETFs trade in whole shares only.
const FractionalPlaces = 6

// ETF represents a tracked fund with its target allocation.
// The symbol is the unique, case-normalized identity; it may carry an
// @MARKET suffix (e.g. "SXR8@IBIS") that the price source resolves.
type ETF struct {
	Symbol         string          `json:"symbol"`
	DisplayName    string          `json:"displayName"`
	TargetPercent  decimal.Decimal `json:"targetPercent"`
	Fractionable   bool            `json:"fractionable"`
	ResolvedSymbol string          `json:"resolvedSymbol,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}

// NormalizeSymbol canonicalizes an ETF symbol: trimmed and upper-cased.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// MinIncrement returns the smallest tradable share unit for the ETF:
// 0.000001 when fractional shares are supported, otherwise 1.
func (e ETF) MinIncrement() decimal.Decimal {
	if e.Fractionable {
		return decimal.New(1, -FractionalPlaces)
	}
	return decimal.NewFromInt(1)
}

// Quantize applies the ETF's rounding policy to a non-negative share
// quantity: fractionable ETFs round half-up to 6 decimal places,
// non-fractionable ETFs round down to whole shares (never up into shares
// the cash cannot cover).
func (e ETF) Quantize(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s shares for %s", apperrors.ErrInvalidQuantity, raw, e.Symbol)
	}
	if e.Fractionable {
		return raw.Round(FractionalPlaces), nil
	}
	return raw.RoundDown(0), nil
}

// FloorToIncrement rounds a non-negative share quantity down to the ETF's
// minimum increment. The planner sizes buys with this so a rounded quantity
// never costs more than the cash allotted to it.
func (e ETF) FloorToIncrement(raw decimal.Decimal) (decimal.Decimal, error) {
	if raw.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s shares for %s", apperrors.ErrInvalidQuantity, raw, e.Symbol)
	}
	if e.Fractionable {
		return raw.RoundDown(FractionalPlaces), nil
	}
	return raw.RoundDown(0), nil
}
