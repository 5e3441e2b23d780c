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

func TestPortfolioHandler_Snapshot(t *testing.T) {
	t.Run("values the portfolio at stored prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		etf := testutil.NewETF().WithSymbol("VWCE").WithTargetPercent("100").Build(t, db)
		testutil.NewTransaction().WithSymbol(etf.Symbol).WithShares("10").WithPrice("90").Build(t, db)
		testutil.NewQuote().WithSymbol(etf.Symbol).WithPrice("100").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Snapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSnapshot
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.TotalValue.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Expected total value 1000, got %s", response.TotalValue)
		}
		if !response.TotalReturn.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Expected total return 100, got %s", response.TotalReturn)
		}
	})

	t.Run("empty configuration yields an empty snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Snapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.PortfolioSnapshot
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response.ETFs) != 0 {
			t.Errorf("Expected no ETF rows, got %d", len(response.ETFs))
		}
		if !response.TotalValue.IsZero() {
			t.Errorf("Expected zero total value, got %s", response.TotalValue)
		}
	})
}

func TestPortfolioHandler_Plan(t *testing.T) {
	t.Run("returns a plan for investable cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		vwce := testutil.NewETF().WithSymbol("VWCE").WithTargetPercent("60").Build(t, db)
		sxr8 := testutil.NewETF().WithSymbol("SXR8").WithTargetPercent("40").Build(t, db)
		testutil.NewQuote().WithSymbol(vwce.Symbol).WithPrice("10").Build(t, db)
		testutil.NewQuote().WithSymbol(sxr8.Symbol).WithPrice("20").Build(t, db)

		body := `{"cashToInvest":"1000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/plan", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.Plan(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.RebalancePlan
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.PlannedSpend.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Expected planned spend 1000, got %s", response.PlannedSpend)
		}
		if line := response.Line("VWCE"); line == nil || !line.BuyAmount.Equal(decimal.NewFromInt(600)) {
			t.Errorf("Expected VWCE buy 600, got %+v", line)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/plan", bytes.NewReader([]byte(`{`)))
		w := httptest.NewRecorder()

		handler.Plan(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 when targets do not sum to 100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		testutil.NewETF().WithSymbol("VWCE").WithTargetPercent("59").Build(t, db)
		testutil.NewETF().WithSymbol("SXR8").WithTargetPercent("40").Build(t, db)

		body := `{"cashToInvest":"1000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/plan", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.Plan(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for negative cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		testutil.NewETF().WithSymbol("VWCE").WithTargetPercent("100").Build(t, db)

		body := `{"cashToInvest":"-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/plan", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.Plan(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 422 when an underweight ETF has no price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		testutil.NewETF().WithSymbol("VWCE").WithTargetPercent("100").Build(t, db)

		body := `{"cashToInvest":"1000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/plan", bytes.NewReader([]byte(body)))
		w := httptest.NewRecorder()

		handler.Plan(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d", w.Code)
		}
	})
}
