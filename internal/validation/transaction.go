package validation

import (
	"strings"
	"time"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/request"
)

func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if err := ValidateSymbol(strings.TrimSpace(req.Symbol)); err != nil {
		errors["symbol"] = "symbol format is not valid"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = "date must use the YYYY-MM-DD format"
	}

	if req.Shares.IsZero() {
		errors["shares"] = "shares must be non-zero"
	}

	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if req.Commission != nil && req.Commission.IsNegative() {
		errors["commission"] = "commission cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
