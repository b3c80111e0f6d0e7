package budget

import (
	"errors"
	"fmt"
	"time"
)

// Budget statuses.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// Spending pace relative to the time-prorated expectation.
const (
	PaceOnTrack = "on_track"
	PaceOver    = "over_pace"
	PaceUnder   = "under_pace"
)

// Alert severities, ordered most urgent first.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Budget periods. The period is descriptive only: windows never auto-roll,
// each period needs a new row or an update.
const (
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

const DefaultAlertThreshold = 80.0

// UnknownCategory is the sentinel display name used when a budget references
// a category that no longer exists.
const UnknownCategory = "Unknown"

var (
	ErrNotFound      = errors.New("budget not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidParams = errors.New("invalid budget parameters")
	ErrInvalidPeriod = errors.New("invalid analytics period")
)

// Budget is a spending ceiling for one category over one explicit date window.
type Budget struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	CategoryID     int64     `json:"categoryId"`
	Name           string    `json:"name"`
	Amount         float64   `json:"amount"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Period         string    `json:"period"`
	AlertThreshold float64   `json:"alertThreshold"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateParams struct {
	UserID         int64
	CategoryID     int64
	Name           string
	Amount         float64
	StartDate      time.Time
	EndDate        time.Time
	Period         string
	AlertThreshold float64
}

// Validate applies defaults and checks budget invariants.
func (p *CreateParams) Validate() error {
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidParams)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: start date must not be after end date", ErrInvalidParams)
	}
	if p.Period == "" {
		p.Period = PeriodMonthly
	}
	switch p.Period {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
	default:
		return fmt.Errorf("%w: invalid period", ErrInvalidParams)
	}
	if p.AlertThreshold == 0 {
		p.AlertThreshold = DefaultAlertThreshold
	}
	if p.AlertThreshold < 0 || p.AlertThreshold > 100 {
		return fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrInvalidParams)
	}
	return nil
}

type UpdateParams struct {
	CategoryID     *int64
	Name           *string
	Amount         *float64
	StartDate      *time.Time
	EndDate        *time.Time
	Period         *string
	AlertThreshold *float64
}

// Evaluation is the derived, per-request state of one budget. Never
// persisted; recomputed from current transaction rows on every read.
type Evaluation struct {
	BudgetID         int64   `json:"budgetId"`
	CategoryName     string  `json:"categoryName"`
	BudgetAmount     float64 `json:"budgetAmount"`
	SpentAmount      float64 `json:"spentAmount"`
	PercentageUsed   float64 `json:"percentageUsed"`
	Status           string  `json:"status"`
	DaysRemaining    int     `json:"daysRemaining"`
	DaysTotal        int     `json:"daysTotal"`
	ExpectedSpending float64 `json:"expectedSpending"`
	SpendingPace     string  `json:"spendingPace"`
	IsActive         bool    `json:"isActive"`
}

// Alert is a derived, non-persisted notification that a budget is near or
// over its limit.
type Alert struct {
	ID        string `json:"id"`
	BudgetID  int64  `json:"budgetId"`
	Type      string `json:"type"` // "exceeded" or "warning"
	Category  string `json:"category"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Dismissed bool   `json:"dismissed"`
}

// Overview aggregates all of a user's budgets.
type Overview struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalSpent      float64 `json:"totalSpent"`
	Available       float64 `json:"available"`
	PercentageUsed  float64 `json:"percentageUsed"`
	BudgetsExceeded int     `json:"budgetsExceeded"`
	TotalBudgets    int     `json:"totalBudgets"`
}

// MonthItem is one row of the dashboard's current-month budget overview.
type MonthItem struct {
	Category   string  `json:"category"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	Status     string  `json:"status"`
}

// CategoryBreakdown is a per-category expense total enriched with the
// overlapping budget, if any.
type CategoryBreakdown struct {
	CategoryID         int64    `json:"categoryId"`
	CategoryName       string   `json:"categoryName"`
	TotalSpent         float64  `json:"totalSpent"`
	TransactionCount   int      `json:"transactionCount"`
	BudgetAmount       *float64 `json:"budgetAmount"`
	PercentageOfBudget *float64 `json:"percentageOfBudget"`
}

// Trends summarizes period-level spending direction.
type Trends struct {
	SpendingTrend string  `json:"spendingTrend"`
	SavingsRate   float64 `json:"savingsRate"`
}

// Analytics is the composite report for one analysis period.
type Analytics struct {
	Period            string              `json:"period"`
	StartDate         string              `json:"startDate"`
	EndDate           string              `json:"endDate"`
	Overview          *Overview           `json:"overview"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	Alerts            []Alert             `json:"alerts"`
	Trends            Trends              `json:"trends"`
}
