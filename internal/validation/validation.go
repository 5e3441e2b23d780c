package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID   = fmt.Errorf("invalid UUID format")
	ErrInvalidSymbol = fmt.Errorf("invalid symbol format")
)

// Configured symbols are tickers with an optional @MARKET suffix,
// e.g. "VWCE", "SXR8@IBIS2", "MWRD.MI".
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,12}(@[A-Za-z0-9]{1,10})?$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateSymbol checks that a string is a plausible configured symbol.
func ValidateSymbol(symbol string) error {
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("%w: %s", ErrInvalidSymbol, symbol)
	}
	return nil
}
