package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrETFNotFound indicates that an ETF with the given symbol does not exist.
	ErrETFNotFound = errors.New("etf not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrQuoteNotFound indicates that no stored price quote exists for the symbol.
	ErrQuoteNotFound = errors.New("price quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidQuantity indicates that a share quantity is negative where a
	// non-negative value is required (e.g., a proposed buy quantity).
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidTargets indicates that the target allocation percentages across
	// all ETFs do not sum to 100% within tolerance.
	ErrInvalidTargets = errors.New("target percentages do not sum to 100")

	// ErrNegativeCash indicates that the cash amount to invest is negative.
	ErrNegativeCash = errors.New("cash to invest cannot be negative")

	// ErrMissingPrice indicates that the price source supplied no price for a
	// held symbol. Informational during valuation; callers decide whether to
	// show partial results.
	ErrMissingPrice = errors.New("missing price")

	// ErrMissingPriceForUnderweight indicates that an underweight ETF has no
	// current price. Blocking: a buy cannot be sized without a price.
	ErrMissingPriceForUnderweight = errors.New("missing price for underweight etf")

	// ErrETFInUse indicates that an ETF cannot be deleted because transactions
	// still reference it.
	ErrETFInUse = errors.New("etf is referenced by transactions")

	// ErrDuplicateETF indicates that an ETF with the same symbol already exists.
	ErrDuplicateETF = errors.New("duplicate etf symbol")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveETFs         = errors.New("failed to retrieve etfs")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveQuotes       = errors.New("failed to retrieve price quotes")
	ErrFailedToBuildSnapshot        = errors.New("failed to build portfolio snapshot")
	ErrFailedToBuildPlan            = errors.New("failed to build rebalance plan")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
)
