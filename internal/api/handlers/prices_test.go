package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/handlers"
	"github.com/jmolenaar/etf-tracker-backend/internal/model"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
	"github.com/jmolenaar/etf-tracker-backend/internal/testutil"
)

func TestPriceHandler_Refresh(t *testing.T) {
	t.Run("fetches and stores prices for all configured ETFs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockPriceClient().
			WithQuote("VWCE", "105.20").
			WithQuote("SXR8", "480.15")
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, mock))

		testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		testutil.NewETF().WithSymbol("SXR8").Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/prices/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response service.RefreshResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response.Updated) != 2 {
			t.Errorf("Expected 2 updated symbols, got %v", response.Updated)
		}
	})

	t.Run("reports per-symbol failures with 200", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockPriceClient().WithQuote("VWCE", "105.20")
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, mock))

		testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		testutil.NewETF().WithSymbol("DEAD").Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/prices/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response service.RefreshResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response.Updated) != 1 || response.Updated[0] != "VWCE" {
			t.Errorf("Expected updated [VWCE], got %v", response.Updated)
		}
		if _, ok := response.Failed["DEAD"]; !ok {
			t.Errorf("Expected DEAD in failures, got %v", response.Failed)
		}
	})
}

func TestPriceHandler_History(t *testing.T) {
	t.Run("returns the stored quote trail", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockPriceClient()))

		etf := testutil.NewETF().WithSymbol("VWCE").Build(t, db)
		testutil.NewQuote().WithSymbol(etf.Symbol).WithPrice("100").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/prices/VWCE",
			map[string]string{"symbol": "VWCE"},
		)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.PriceQuote
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 quote, got %d", len(response))
		}
		if !response[0].Price.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Expected price 100, got %s", response[0].Price)
		}
	})

	t.Run("returns 404 for unknown symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockPriceClient()))

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/prices/NOPE",
			map[string]string{"symbol": "NOPE"},
		)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns 404 when no quotes are stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPriceHandler(testutil.NewTestPriceService(t, db, testutil.NewMockPriceClient()))

		testutil.NewETF().WithSymbol("VWCE").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/prices/VWCE",
			map[string]string{"symbol": "VWCE"},
		)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
