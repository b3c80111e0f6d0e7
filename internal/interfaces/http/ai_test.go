package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/insights"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

// MockGenerator implements insights.Generator for testing
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

func newAIHandler(gen insights.Generator, reader *MockReader, budgets *MockBudgetRepo) *AIHandler {
	if budgets == nil {
		budgets = &MockBudgetRepo{}
	}
	evaluator := budget.NewEvaluator(budgets, metrics.NewAggregator(reader), reader)
	return NewAIHandler(insights.NewEngine(gen), metrics.NewCalculator(reader), evaluator, reader)
}

func TestHandleInsights_FallbackWithoutGenerator(t *testing.T) {
	reader := &MockReader{
		SumByTypeFunc: func(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
			if txType == ledger.TypeIncome {
				return 1000, nil
			}
			return 400, nil
		},
		ExpenseTotalsByCategoryFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error) {
			return []ledger.CategoryTotal{
				{CategoryID: 1, Category: "Food", Amount: 300, Count: 5},
				{CategoryID: 2, Category: "Transport", Amount: 100, Count: 2},
			}, nil
		},
	}
	h := newAIHandler(nil, reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/ai/insights", nil)
	rec := httptest.NewRecorder()
	h.HandleInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Insights []insights.Insight `json:"insights"`
	}
	decodeJSON(t, rec, &resp)
	if len(resp.Insights) == 0 {
		t.Fatal("expected fallback insights, got none")
	}

	found := false
	for _, in := range resp.Insights {
		if in.Type == "tip" && in.Category == "Food" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a savings tip for the top category, got %+v", resp.Insights)
	}
}

func TestHandleInsights_UsesGeneratorOutput(t *testing.T) {
	gen := &MockGenerator{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return `{"insights": [{"type": "warning", "title": "Alto gasto", "message": "Revisa tus gastos", "confidence": "Alta"}]}`, nil
		},
	}
	h := newAIHandler(gen, &MockReader{}, nil)

	req := authedRequest(t, http.MethodGet, "/api/ai/insights", nil)
	rec := httptest.NewRecorder()
	h.HandleInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Insights []insights.Insight `json:"insights"`
	}
	decodeJSON(t, rec, &resp)
	if len(resp.Insights) != 1 || resp.Insights[0].Title != "Alto gasto" {
		t.Errorf("expected the model insight to pass through, got %+v", resp.Insights)
	}
}

func TestHandlePredictions(t *testing.T) {
	reader := &MockReader{
		EntriesInRangeFunc: func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
			entries := make([]ledger.Entry, 0, 3)
			for i := 0; i < 3; i++ {
				entries = append(entries, ledger.Entry{
					ID: int64(i + 1), Category: "Food", Amount: -10, Type: ledger.TypeExpense,
					Date: time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC),
				})
			}
			return entries, nil
		},
	}
	h := newAIHandler(nil, reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/ai/predictions", nil)
	rec := httptest.NewRecorder()
	h.HandlePredictions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Predictions []insights.Prediction `json:"predictions"`
	}
	decodeJSON(t, rec, &resp)
	if len(resp.Predictions) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(resp.Predictions))
	}
	p := resp.Predictions[0]
	if p.Predicted != 10 || len(p.Factors) == 0 || p.Factors[0] != "Categoría: Food" {
		t.Errorf("unexpected prediction: %+v", p)
	}
}

func TestHandleForecast_EmptyLedger(t *testing.T) {
	h := newAIHandler(nil, &MockReader{}, nil)

	req := authedRequest(t, http.MethodGet, "/api/ai/forecast", nil)
	rec := httptest.NewRecorder()
	h.HandleForecast(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Forecast *insights.BalanceForecast `json:"forecast"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Forecast != nil {
		t.Errorf("expected null forecast for empty ledger, got %+v", resp.Forecast)
	}
}

func TestHandleRisk(t *testing.T) {
	reader := &MockReader{
		EntriesInRangeFunc: func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
			return []ledger.Entry{
				{ID: 1, Category: "Food", Amount: -100, Type: ledger.TypeExpense, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: 2, Category: "Salary", Amount: 1000, Type: ledger.TypeIncome, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
		SumByTypeFunc: func(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
			if txType == ledger.TypeIncome {
				return 1000, nil
			}
			return 100, nil
		},
		TotalBalanceFunc: func(ctx context.Context, userID int64) (float64, error) {
			return 900, nil
		},
	}
	h := newAIHandler(nil, reader, nil)

	req := authedRequest(t, http.MethodGet, "/api/ai/risk", nil)
	rec := httptest.NewRecorder()
	h.HandleRisk(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Risk *insights.RiskAnalysis `json:"risk"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Risk == nil {
		t.Fatal("expected a risk analysis")
	}
	if resp.Risk.Level == "" {
		t.Error("expected a risk level label")
	}
}
