package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
	"github.com/jmolenaar/etf-tracker-backend/internal/yahoo"
)

func NewTestETFService(t *testing.T, db *sql.DB) *service.ETFService {
	t.Helper()

	etfRepo := repository.NewETFRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	return service.NewETFService(etfRepo, txRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	txRepo := repository.NewTransactionRepository(db)
	etfRepo := repository.NewETFRepository(db)

	return service.NewTransactionService(txRepo, etfRepo)
}

func NewTestPriceService(t *testing.T, db *sql.DB, client yahoo.Client) *service.PriceService {
	t.Helper()

	etfRepo := repository.NewETFRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	return service.NewPriceService(etfRepo, quoteRepo, client)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	etfRepo := repository.NewETFRepository(db)

	return service.NewPortfolioService(
		etfRepo,
		NewTestTransactionService(t, db),
		NewTestPriceService(t, db, NewMockPriceClient()),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a unique ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("VWCE")
//	// Returns: "VWCE1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
