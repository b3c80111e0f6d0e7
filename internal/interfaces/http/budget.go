package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/budget"
	"fintrack/internal/shared/middleware"
)

type BudgetHandler struct {
	svc       *budget.Service
	evaluator *budget.Evaluator
}

func NewBudgetHandler(svc *budget.Service, evaluator *budget.Evaluator) *BudgetHandler {
	return &BudgetHandler{svc: svc, evaluator: evaluator}
}

type CreateBudgetRequest struct {
	CategoryID     int64   `json:"categoryId"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Period         string  `json:"period,omitempty"`
	AlertThreshold float64 `json:"alertThreshold,omitempty"`
}

type UpdateBudgetRequest struct {
	CategoryID     *int64   `json:"categoryId,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	StartDate      *string  `json:"startDate,omitempty"`
	EndDate        *string  `json:"endDate,omitempty"`
	Period         *string  `json:"period,omitempty"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty"`
}

// HandleList returns the user's budgets.
func (h *BudgetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing budgets for user %d: %v", userID, err)
		http.Error(w, "Failed to list budgets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(budgets)
}

// HandleCreate creates a budget against one of the user's categories.
func (h *BudgetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, "Invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		http.Error(w, "Invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		UserID:         userID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Amount:         req.Amount,
		StartDate:      start,
		EndDate:        end,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		writeBudgetError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

// HandleGet returns one budget owned by the user.
func (h *BudgetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeBudgetError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// HandleUpdate applies a partial update to a budget.
func (h *BudgetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := budget.UpdateParams{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Amount:         req.Amount,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			http.Error(w, "Invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			http.Error(w, "Invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.EndDate = &end
	}

	b, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		writeBudgetError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// HandleDelete removes a budget.
func (h *BudgetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeBudgetError(w, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAlerts returns active budget alerts sorted by severity.
func (h *BudgetHandler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	alerts, err := h.evaluator.AlertsForUser(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing budget alerts for user %d: %v", userID, err)
		http.Error(w, "Failed to compute alerts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alerts)
}

// HandlePerformance returns per-budget evaluations.
func (h *BudgetHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	evals, err := h.evaluator.PerformanceForUser(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing budget performance for user %d: %v", userID, err)
		http.Error(w, "Failed to compute performance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(evals)
}

// HandleOverview returns totals aggregated across all budgets.
func (h *BudgetHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	overview, err := h.evaluator.OverviewForUser(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error computing budget overview for user %d: %v", userID, err)
		http.Error(w, "Failed to compute overview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

// HandleAnalytics returns the full analytics block for a period
// (weekly, monthly, quarterly, or yearly).
func (h *BudgetHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = budget.PeriodMonthly
	}

	analytics, err := h.evaluator.Analytics(r.Context(), userID, period, time.Now())
	if err != nil {
		if errors.Is(err, budget.ErrInvalidPeriod) {
			http.Error(w, "Invalid period", http.StatusBadRequest)
			return
		}
		log.Printf("Error computing budget analytics for user %d: %v", userID, err)
		http.Error(w, "Failed to compute analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analytics)
}

func writeBudgetError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "Budget not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, budget.ErrInvalidParams):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Budget error for user %d: %v", userID, err)
		http.Error(w, "Budget operation failed", http.StatusInternalServerError)
	}
}
