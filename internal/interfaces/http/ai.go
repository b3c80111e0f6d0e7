package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/insights"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
	"fintrack/internal/shared/middleware"
)

type AIHandler struct {
	engine    *insights.Engine
	calc      *metrics.Calculator
	evaluator *budget.Evaluator
	reader    ledger.Reader
}

func NewAIHandler(engine *insights.Engine, calc *metrics.Calculator, evaluator *budget.Evaluator, reader ledger.Reader) *AIHandler {
	return &AIHandler{engine: engine, calc: calc, evaluator: evaluator, reader: reader}
}

// HandleInsights returns advisory insights, generated by the LLM when
// available and by the deterministic heuristics otherwise.
func (h *AIHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := time.Now()

	summary, err := h.calc.Summary(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing summary for insights, user %d: %v", userID, err)
		http.Error(w, "Failed to generate insights", http.StatusInternalServerError)
		return
	}

	exceeded, err := h.exceededBudgets(ctx, userID, now)
	if err != nil {
		log.Printf("Error evaluating budgets for insights, user %d: %v", userID, err)
		http.Error(w, "Failed to generate insights", http.StatusInternalServerError)
		return
	}

	totals, err := h.reader.ExpenseTotalsByCategory(ctx, userID, metrics.MonthStart(now), now)
	if err != nil {
		log.Printf("Error aggregating expenses for insights, user %d: %v", userID, err)
		http.Error(w, "Failed to generate insights", http.StatusInternalServerError)
		return
	}
	categoryExpenses := make(map[string]float64, len(totals))
	for _, t := range totals {
		categoryExpenses[t.Category] = t.Amount
	}

	recent, err := h.reader.RecentEntries(ctx, userID, 10)
	if err != nil {
		log.Printf("Error listing recent entries for insights, user %d: %v", userID, err)
		http.Error(w, "Failed to generate insights", http.StatusInternalServerError)
		return
	}

	result := h.engine.Insights(ctx, summary, exceeded, categoryExpenses, recent)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"insights": result})
}

// HandlePredictions returns per-category spending predictions plus the
// LLM-predicted upcoming transactions when the model is reachable.
func (h *AIHandler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "1month"
	}

	entries, err := h.reader.EntriesInRange(r.Context(), userID, nil, nil)
	if err != nil {
		log.Printf("Error listing entries for predictions, user %d: %v", userID, err)
		http.Error(w, "Failed to compute predictions", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"predictions": insights.SpendingPredictions(entries, timeframe),
	}

	// The model path is best-effort; its absence never fails the request.
	if predicted, err := h.engine.PredictTransactions(r.Context(), entries); err == nil {
		response["upcomingTransactions"] = predicted
	} else {
		log.Printf("Transaction prediction unavailable for user %d: %v", userID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleForecast returns the three-scenario balance forecast.
func (h *AIHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "6months"
	}

	entries, err := h.reader.EntriesInRange(r.Context(), userID, nil, nil)
	if err != nil {
		log.Printf("Error listing entries for forecast, user %d: %v", userID, err)
		http.Error(w, "Failed to compute forecast", http.StatusInternalServerError)
		return
	}

	forecast := insights.Forecast(entries, timeframe)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"forecast": forecast})
}

// HandleRisk returns the weighted financial risk analysis.
func (h *AIHandler) HandleRisk(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := time.Now()

	summary, err := h.calc.Summary(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing summary for risk, user %d: %v", userID, err)
		http.Error(w, "Failed to compute risk", http.StatusInternalServerError)
		return
	}

	exceeded, err := h.exceededBudgets(ctx, userID, now)
	if err != nil {
		log.Printf("Error evaluating budgets for risk, user %d: %v", userID, err)
		http.Error(w, "Failed to compute risk", http.StatusInternalServerError)
		return
	}

	entries, err := h.reader.EntriesInRange(ctx, userID, nil, nil)
	if err != nil {
		log.Printf("Error listing entries for risk, user %d: %v", userID, err)
		http.Error(w, "Failed to compute risk", http.StatusInternalServerError)
		return
	}

	analysis := insights.AnalyzeRisk(entries, len(exceeded), summary)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"risk": analysis})
}

// HandleTrends returns the week-over-week spending trend.
func (h *AIHandler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.reader.EntriesInRange(r.Context(), userID, nil, nil)
	if err != nil {
		log.Printf("Error listing entries for trends, user %d: %v", userID, err)
		http.Error(w, "Failed to compute trends", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(insights.SpendingTrends(entries))
}

// HandleRecommendations returns prioritized savings recommendations.
func (h *AIHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := time.Now()

	summary, err := h.calc.Summary(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing summary for recommendations, user %d: %v", userID, err)
		http.Error(w, "Failed to compute recommendations", http.StatusInternalServerError)
		return
	}

	exceeded, err := h.exceededBudgets(ctx, userID, now)
	if err != nil {
		log.Printf("Error evaluating budgets for recommendations, user %d: %v", userID, err)
		http.Error(w, "Failed to compute recommendations", http.StatusInternalServerError)
		return
	}

	entries, err := h.reader.EntriesInRange(ctx, userID, nil, nil)
	if err != nil {
		log.Printf("Error listing entries for recommendations, user %d: %v", userID, err)
		http.Error(w, "Failed to compute recommendations", http.StatusInternalServerError)
		return
	}

	recommendations := insights.SmartRecommendations(entries, exceeded, summary)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"recommendations": recommendations})
}

// exceededBudgets evaluates the user's budgets and returns the over-limit
// ones in the shape the heuristics consume.
func (h *AIHandler) exceededBudgets(ctx context.Context, userID int64, now time.Time) ([]insights.ExceededBudget, error) {
	evals, err := h.evaluator.PerformanceForUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	exceeded := []insights.ExceededBudget{}
	for _, e := range evals {
		if e.Status != budget.StatusOver {
			continue
		}
		exceeded = append(exceeded, insights.ExceededBudget{
			Category:   e.CategoryName,
			Spent:      e.SpentAmount,
			Budget:     e.BudgetAmount,
			ExceededBy: e.SpentAmount - e.BudgetAmount,
		})
	}

	return exceeded, nil
}
