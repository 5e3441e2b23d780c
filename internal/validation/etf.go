package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
)

var percentMax = decimal.NewFromInt(100)

func validTargetPercent(pct decimal.Decimal) bool {
	return !pct.IsNegative() && !pct.GreaterThan(percentMax)
}

func ValidateCreateETF(req request.CreateETFRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if err := ValidateSymbol(strings.TrimSpace(req.Symbol)); err != nil {
		errors["symbol"] = "symbol may contain letters, digits, dots and dashes, with an optional @MARKET suffix"
	}

	if len(req.DisplayName) > 100 {
		errors["displayName"] = "display name must be 100 characters or less"
	}

	if !validTargetPercent(req.TargetPercent) {
		errors["targetPercent"] = "target percent must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateETF(req request.UpdateETFRequest) error {
	errors := make(map[string]string)

	if req.DisplayName != nil && len(*req.DisplayName) > 100 {
		errors["displayName"] = "display name must be 100 characters or less"
	}

	if req.TargetPercent != nil && !validTargetPercent(*req.TargetPercent) {
		errors["targetPercent"] = "target percent must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
