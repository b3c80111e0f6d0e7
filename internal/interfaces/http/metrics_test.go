package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

func newMetricsHandler(reader *MockReader, budgets *MockBudgetRepo) *MetricsHandler {
	if budgets == nil {
		budgets = &MockBudgetRepo{}
	}
	evaluator := budget.NewEvaluator(budgets, metrics.NewAggregator(reader), reader)
	return NewMetricsHandler(metrics.NewCalculator(reader), metrics.NewDashboard(reader), evaluator)
}

func TestHandleSummary(t *testing.T) {
	reader := &MockReader{
		TotalBalanceFunc: func(ctx context.Context, userID int64) (float64, error) {
			return 1500, nil
		},
		SumByTypeFunc: func(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
			if txType == ledger.TypeIncome {
				return 2000, nil
			}
			return 800, nil
		},
	}
	h := newMetricsHandler(reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/metrics/summary", nil)
	rec := httptest.NewRecorder()
	h.HandleSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary metrics.FinancialSummary
	decodeJSON(t, rec, &summary)
	if summary.TotalBalance != 1500 {
		t.Errorf("expected total balance 1500, got %v", summary.TotalBalance)
	}
	if summary.Savings != 1200 {
		t.Errorf("expected savings 1200, got %v", summary.Savings)
	}
}

func TestHandleMonthlyChart_MonthsValidation(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{"Default", "/api/metrics/monthly-chart", http.StatusOK},
		{"Explicit", "/api/metrics/monthly-chart?months=12", http.StatusOK},
		{"TooMany", "/api/metrics/monthly-chart?months=60", http.StatusBadRequest},
		{"Zero", "/api/metrics/monthly-chart?months=0", http.StatusBadRequest},
		{"NotANumber", "/api/metrics/monthly-chart?months=abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newMetricsHandler(&MockReader{}, nil)

			req := authedRequest(t, http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.HandleMonthlyChart(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleRecentTransactions_LimitValidation(t *testing.T) {
	var gotLimit int
	reader := &MockReader{
		RecentEntriesFunc: func(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
			gotLimit = limit
			return []ledger.Entry{}, nil
		},
	}
	h := newMetricsHandler(reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/metrics/recent-transactions", nil)
	rec := httptest.NewRecorder()
	h.HandleRecentTransactions(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotLimit != 10 {
		t.Errorf("expected default limit 10, got %d", gotLimit)
	}

	req = authedRequest(t, http.MethodGet, "/api/metrics/recent-transactions?limit=100", nil)
	rec = httptest.NewRecorder()
	h.HandleRecentTransactions(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for limit=100, got %d", rec.Code)
	}
}

func TestHandleComplete(t *testing.T) {
	reader := &MockReader{
		TotalBalanceFunc: func(ctx context.Context, userID int64) (float64, error) {
			return 300, nil
		},
	}
	h := newMetricsHandler(reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/metrics/complete", nil)
	rec := httptest.NewRecorder()
	h.HandleComplete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	for _, key := range []string{"financialSummary", "monthlyChart", "categoryChart", "recentTransactions", "budgetOverview"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("expected key %q in dashboard response", key)
		}
	}
}
