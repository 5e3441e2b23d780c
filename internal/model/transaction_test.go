package model_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/model"
)

func TestTransaction_ExpectedAmount(t *testing.T) {
	tx := model.Transaction{
		Shares:     decimal.RequireFromString("10"),
		Price:      decimal.RequireFromString("95.50"),
		Commission: decimal.RequireFromString("2.50"),
	}

	if got := tx.ExpectedAmount(); !got.Equal(decimal.RequireFromString("957.50")) {
		t.Errorf("ExpectedAmount() = %s, want 957.50", got)
	}
}

func TestTransaction_AmountMismatch(t *testing.T) {
	t.Run("consistent amount passes", func(t *testing.T) {
		tx := model.Transaction{
			Shares:     decimal.NewFromInt(10),
			Price:      decimal.NewFromInt(100),
			Amount:     decimal.NewFromInt(1000),
			Commission: decimal.Zero,
		}

		if _, mismatch := tx.AmountMismatch(); mismatch {
			t.Error("Expected no mismatch for a consistent amount")
		}
	})

	t.Run("drift within tolerance passes", func(t *testing.T) {
		tx := model.Transaction{
			Shares:     decimal.NewFromInt(10),
			Price:      decimal.NewFromInt(100),
			Amount:     decimal.RequireFromString("1000.01"),
			Commission: decimal.Zero,
		}

		if _, mismatch := tx.AmountMismatch(); mismatch {
			t.Error("Expected one-cent drift to stay within tolerance")
		}
	})

	t.Run("larger drift is flagged", func(t *testing.T) {
		tx := model.Transaction{
			Shares:     decimal.NewFromInt(10),
			Price:      decimal.NewFromInt(100),
			Amount:     decimal.RequireFromString("1001.00"),
			Commission: decimal.Zero,
		}

		diff, mismatch := tx.AmountMismatch()
		if !mismatch {
			t.Fatal("Expected mismatch to be flagged")
		}
		if !diff.Equal(decimal.NewFromInt(1)) {
			t.Errorf("Expected diff 1, got %s", diff)
		}
	})
}
