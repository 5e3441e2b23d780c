package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

// ETFBuilder provides a fluent interface for creating test ETFs.
//
// Example usage:
//
//	// Simple creation with defaults
//	etf := testutil.NewETF().Build(t, db)
//
//	// Customized ETF
//	etf := testutil.NewETF().
//	    WithSymbol("VWCE@AEB").
//	    WithTargetPercent("60").
//	    NonFractionable().
//	    Build(t, db)
type ETFBuilder struct {
	Symbol        string
	DisplayName   string
	TargetPercent decimal.Decimal
	Fractionable  bool
}

// NewETF creates an ETFBuilder with sensible defaults.
func NewETF() *ETFBuilder {
	return &ETFBuilder{
		Symbol:        MakeSymbol("ETF"),
		DisplayName:   "Test ETF",
		TargetPercent: decimal.NewFromInt(100),
		Fractionable:  true,
	}
}

// WithSymbol sets a custom symbol.
func (b *ETFBuilder) WithSymbol(symbol string) *ETFBuilder {
	b.Symbol = symbol
	return b
}

// WithDisplayName sets a custom display name.
func (b *ETFBuilder) WithDisplayName(name string) *ETFBuilder {
	b.DisplayName = name
	return b
}

// WithTargetPercent sets the target allocation percentage from a decimal string.
func (b *ETFBuilder) WithTargetPercent(pct string) *ETFBuilder {
	b.TargetPercent = decimal.RequireFromString(pct)
	return b
}

// NonFractionable marks the ETF as whole-shares-only.
func (b *ETFBuilder) NonFractionable() *ETFBuilder {
	b.Fractionable = false
	return b
}

// Build creates the ETF in the database and returns it.
func (b *ETFBuilder) Build(t *testing.T, db *sql.DB) model.ETF {
	t.Helper()

	symbol := model.NormalizeSymbol(b.Symbol)

	query := `
		INSERT INTO etf (symbol, display_name, target_percent, fractionable)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, symbol, b.DisplayName, b.TargetPercent.String(), b.Fractionable)
	if err != nil {
		t.Fatalf("Failed to create test etf: %v", err)
	}

	return model.ETF{
		Symbol:        symbol,
		DisplayName:   b.DisplayName,
		TargetPercent: b.TargetPercent,
		Fractionable:  b.Fractionable,
	}
}

// TransactionBuilder provides a fluent interface for creating test ledger records.
//
// Example usage:
//
//	tx := testutil.NewTransaction().
//	    WithSymbol(etf.Symbol).
//	    WithShares("10").
//	    WithPrice("95.50").
//	    Build(t, db)
type TransactionBuilder struct {
	ID         string
	Symbol     string
	Date       time.Time
	Shares     decimal.Decimal
	Price      decimal.Decimal
	Amount     *decimal.Decimal
	Commission decimal.Decimal
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
// The amount defaults to shares*price+commission unless WithAmount is used.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		Symbol:     "TEST",
		Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Shares:     decimal.NewFromInt(10),
		Price:      decimal.NewFromInt(100),
		Commission: decimal.Zero,
	}
}

// WithSymbol sets the referenced ETF symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithDate sets the execution date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithShares sets the signed share quantity from a decimal string.
func (b *TransactionBuilder) WithShares(shares string) *TransactionBuilder {
	b.Shares = decimal.RequireFromString(shares)
	return b
}

// WithPrice sets the per-share price from a decimal string.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// WithAmount overrides the derived amount with an explicit value.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	a := decimal.RequireFromString(amount)
	b.Amount = &a
	return b
}

// WithCommission sets the commission from a decimal string.
func (b *TransactionBuilder) WithCommission(commission string) *TransactionBuilder {
	b.Commission = decimal.RequireFromString(commission)
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:         b.ID,
		Symbol:     model.NormalizeSymbol(b.Symbol),
		Date:       b.Date,
		Shares:     b.Shares,
		Price:      b.Price,
		Commission: b.Commission,
	}
	if b.Amount != nil {
		tx.Amount = *b.Amount
	} else {
		tx.Amount = tx.ExpectedAmount()
	}

	query := `
		INSERT INTO txn (id, symbol, date, shares, price, amount, commission)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		tx.ID,
		tx.Symbol,
		tx.Date.UTC().Format("2006-01-02 15:04:05"),
		tx.Shares.String(),
		tx.Price.String(),
		tx.Amount.String(),
		tx.Commission.String(),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// QuoteBuilder provides a fluent interface for creating stored price quotes.
type QuoteBuilder struct {
	ID        string
	Symbol    string
	Price     decimal.Decimal
	FetchedAt time.Time
}

// NewQuote creates a QuoteBuilder with sensible defaults.
func NewQuote() *QuoteBuilder {
	return &QuoteBuilder{
		ID:        MakeID(),
		Symbol:    "TEST",
		Price:     decimal.NewFromInt(100),
		FetchedAt: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
	}
}

// WithSymbol sets the quoted ETF symbol.
func (b *QuoteBuilder) WithSymbol(symbol string) *QuoteBuilder {
	b.Symbol = symbol
	return b
}

// WithPrice sets the quoted price from a decimal string.
func (b *QuoteBuilder) WithPrice(price string) *QuoteBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// WithFetchedAt sets the fetch timestamp.
func (b *QuoteBuilder) WithFetchedAt(at time.Time) *QuoteBuilder {
	b.FetchedAt = at
	return b
}

// Build creates the quote in the database and returns it.
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.PriceQuote {
	t.Helper()

	quote := model.PriceQuote{
		ID:        b.ID,
		Symbol:    model.NormalizeSymbol(b.Symbol),
		Price:     b.Price,
		FetchedAt: b.FetchedAt,
	}

	query := `
		INSERT INTO price_quote (id, symbol, price, fetched_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		quote.ID,
		quote.Symbol,
		quote.Price.String(),
		quote.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("Failed to create test price quote: %v", err)
	}

	return quote
}
