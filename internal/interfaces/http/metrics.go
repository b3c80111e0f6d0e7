package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/metrics"
	"fintrack/internal/shared/middleware"
)

const (
	defaultChartMonths = 6
	maxChartMonths     = 24
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

type MetricsHandler struct {
	calc      *metrics.Calculator
	dashboard *metrics.Dashboard
	evaluator *budget.Evaluator
}

func NewMetricsHandler(calc *metrics.Calculator, dashboard *metrics.Dashboard, evaluator *budget.Evaluator) *MetricsHandler {
	return &MetricsHandler{calc: calc, dashboard: dashboard, evaluator: evaluator}
}

// HandleSummary returns current-month totals with month-over-month changes.
func (h *MetricsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.calc.Summary(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing financial summary for user %d: %v", userID, err)
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandleMonthlyChart returns the per-month income/expense series.
func (h *MetricsHandler) HandleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	months := defaultChartMonths
	if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil || parsed < 1 || parsed > maxChartMonths {
			http.Error(w, "months must be between 1 and 24", http.StatusBadRequest)
			return
		}
		months = parsed
	}

	series, err := h.dashboard.MonthlySeries(r.Context(), userID, months, time.Now())
	if err != nil {
		log.Printf("Error computing monthly chart for user %d: %v", userID, err)
		http.Error(w, "Failed to compute monthly chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(series)
}

// HandleCategoryChart returns current-month expenses per category.
func (h *MetricsHandler) HandleCategoryChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.dashboard.CategoryChart(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing category chart for user %d: %v", userID, err)
		http.Error(w, "Failed to compute category chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// HandleRecentTransactions returns the newest transactions with category
// names resolved.
func (h *MetricsHandler) HandleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > maxRecentLimit {
			http.Error(w, "limit must be between 1 and 50", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.dashboard.RecentTransactions(r.Context(), userID, limit)
	if err != nil {
		log.Printf("Error listing recent transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to list recent transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// HandleBudgetOverview returns current-month budget usage per category.
func (h *MetricsHandler) HandleBudgetOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.evaluator.CurrentMonthOverview(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing budget overview for user %d: %v", userID, err)
		http.Error(w, "Failed to compute budget overview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// HandleComplete returns every dashboard block in a single response so the
// initial page load needs one request.
func (h *MetricsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := time.Now()

	summary, err := h.calc.Summary(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", userID, err)
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}
	monthly, err := h.dashboard.MonthlySeries(ctx, userID, defaultChartMonths, now)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", userID, err)
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}
	categories, err := h.dashboard.CategoryChart(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", userID, err)
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}
	recent, err := h.dashboard.RecentTransactions(ctx, userID, defaultRecentLimit)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", userID, err)
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}
	budgets, err := h.evaluator.CurrentMonthOverview(ctx, userID, now)
	if err != nil {
		log.Printf("Error computing dashboard for user %d: %v", userID, err)
		http.Error(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"financialSummary":   summary,
		"monthlyChart":       monthly,
		"categoryChart":      categories,
		"recentTransactions": recent,
		"budgetOverview":     budgets,
	})
}
