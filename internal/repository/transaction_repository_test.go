package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/apperrors"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
	"github.com/jmolenaar/etf-tracker-backend/internal/testutil"
)

func TestTransactionRepository_AppendAndGet(t *testing.T) {
	t.Run("insert then read back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		etf := testutil.NewETF().WithSymbol("VWCE").Build(t, db)

		tx := model.Transaction{
			ID:         testutil.MakeID(),
			Symbol:     etf.Symbol,
			Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Shares:     decimal.RequireFromString("10.5"),
			Price:      decimal.RequireFromString("95.50"),
			Amount:     decimal.RequireFromString("1002.75"),
			Commission: decimal.Zero,
		}
		if err := repo.AppendTransaction(context.Background(), &tx); err != nil {
			t.Fatalf("AppendTransaction returned unexpected error: %v", err)
		}

		got, err := repo.GetTransaction(tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction returned unexpected error: %v", err)
		}
		if !got.Shares.Equal(tx.Shares) {
			t.Errorf("Expected shares 10.5, got %s", got.Shares)
		}
		if !got.Amount.Equal(tx.Amount) {
			t.Errorf("Expected amount 1002.75, got %s", got.Amount)
		}
		if !got.Date.Equal(tx.Date) {
			t.Errorf("Expected date %s, got %s", tx.Date, got.Date)
		}
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		_, err := repo.GetTransaction(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("rejects records for symbols without an ETF row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		tx := model.Transaction{
			ID:     testutil.MakeID(),
			Symbol: "ORPHAN",
			Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Shares: decimal.NewFromInt(1),
			Price:  decimal.NewFromInt(100),
			Amount: decimal.NewFromInt(100),
		}
		if err := repo.AppendTransaction(context.Background(), &tx); err == nil {
			t.Error("Expected foreign key violation, got nil")
		}
	})
}

func TestTransactionRepository_ListTransactions(t *testing.T) {
	t.Run("orders by execution date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		etf := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		later := testutil.NewTransaction().WithSymbol(etf.Symbol).
			WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)
		earlier := testutil.NewTransaction().WithSymbol(etf.Symbol).
			WithDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)

		transactions, err := repo.ListTransactions("")
		if err != nil {
			t.Fatalf("ListTransactions returned unexpected error: %v", err)
		}

		if len(transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].ID != earlier.ID || transactions[1].ID != later.ID {
			t.Errorf("Expected date-ascending order, got %s then %s",
				transactions[0].Date, transactions[1].Date)
		}
	})

	t.Run("filters by normalized symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		vwce := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		sxr8 := testutil.NewETF().WithSymbol("SXR8").Build(t, db)
		testutil.NewTransaction().WithSymbol(vwce.Symbol).Build(t, db)
		testutil.NewTransaction().WithSymbol(sxr8.Symbol).Build(t, db)

		transactions, err := repo.ListTransactions("vwce")
		if err != nil {
			t.Fatalf("ListTransactions returned unexpected error: %v", err)
		}

		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(transactions))
		}
		if transactions[0].Symbol != "VWCE" {
			t.Errorf("Expected symbol VWCE, got %s", transactions[0].Symbol)
		}
	})

	t.Run("returns empty slice for empty ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		transactions, err := repo.ListTransactions("")
		if err != nil {
			t.Fatalf("ListTransactions returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty slice, got %d transactions", len(transactions))
		}
	})
}

func TestTransactionRepository_CountBySymbol(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	etf := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
	testutil.NewTransaction().WithSymbol(etf.Symbol).Build(t, db)
	testutil.NewTransaction().WithSymbol(etf.Symbol).Build(t, db)

	count, err := repo.CountBySymbol("vwce")
	if err != nil {
		t.Fatalf("CountBySymbol returned unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}

	count, err = repo.CountBySymbol("SXR8")
	if err != nil {
		t.Fatalf("CountBySymbol returned unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0, got %d", count)
	}
}
