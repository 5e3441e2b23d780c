package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/handlers"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/testutil"
)

func TestTransactionHandler_Transactions(t *testing.T) {
	t.Run("returns empty array for an empty ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("filters by the symbol query parameter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		vwce := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		sxr8 := testutil.NewETF().WithSymbol("SXR8").Build(t, db)
		testutil.NewTransaction().WithSymbol(vwce.Symbol).Build(t, db)
		testutil.NewTransaction().WithSymbol(sxr8.Symbol).Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/transaction",
			map[string]string{"symbol": "VWCE"},
		)
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(response))
		}
		if response[0].Symbol != "VWCE" {
			t.Errorf("Expected symbol VWCE, got %s", response[0].Symbol)
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns a ledger record by id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		etf := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		tx := testutil.NewTransaction().WithSymbol(etf.Symbol).WithShares("10").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID != tx.ID {
			t.Errorf("Expected ID %s, got %s", tx.ID, response.ID)
		}
		if !response.Shares.Equal(decimal.NewFromInt(10)) {
			t.Errorf("Expected shares 10, got %s", response.Shares)
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("appends a record and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		testutil.NewETF().WithSymbol("VWCE").Build(t, db)

		body := `{"symbol":"VWCE","date":"2024-01-15","shares":"10","price":"95.50","commission":"2.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.Amount.Equal(decimal.RequireFromString("957.50")) {
			t.Errorf("Expected derived amount 957.50, got %s", response.Amount)
		}
	})

	t.Run("returns 400 when validation fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		body := `{"symbol":"VWCE","date":"15-01-2024","shares":"0","price":"0"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 when the ETF is not configured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		body := `{"symbol":"NOPE","date":"2024-01-15","shares":"10","price":"95.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
