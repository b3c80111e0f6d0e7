package metrics

import (
	"context"
	"fmt"
	"math"
	"time"

	"fintrack/internal/domain/ledger"
)

// Changes holds month-over-month deltas as signed percentage strings.
type Changes struct {
	Balance  string `json:"balance"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Savings  string `json:"savings"`
}

// FinancialSummary holds the dashboard card metrics. Amounts are rounded to
// two decimal places at this boundary only.
type FinancialSummary struct {
	TotalBalance    float64 `json:"totalBalance"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	Savings         float64 `json:"savings"`
	Changes         Changes `json:"changes"`
}

// Calculator computes the financial summary from current transaction rows.
// Stateless: every call recomputes from storage.
type Calculator struct {
	reader ledger.Reader
}

func NewCalculator(reader ledger.Reader) *Calculator {
	return &Calculator{reader: reader}
}

// Summary computes current-month metrics as of asOf plus percentage changes
// against the previous calendar month.
func (c *Calculator) Summary(ctx context.Context, userID int64, asOf time.Time) (*FinancialSummary, error) {
	currentStart := MonthStart(asOf)
	prevStart, prevEnd := PreviousMonth(asOf)

	totalBalance, err := c.reader.TotalBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: total balance: %w", err)
	}

	monthlyIncome, err := c.reader.SumByType(ctx, userID, ledger.TypeIncome, currentStart, asOf)
	if err != nil {
		return nil, fmt.Errorf("summary: monthly income: %w", err)
	}

	monthlyExpenses, err := c.reader.SumByType(ctx, userID, ledger.TypeExpense, currentStart, asOf)
	if err != nil {
		return nil, fmt.Errorf("summary: monthly expenses: %w", err)
	}

	prevIncome, err := c.reader.SumByType(ctx, userID, ledger.TypeIncome, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("summary: previous income: %w", err)
	}

	prevExpenses, err := c.reader.SumByType(ctx, userID, ledger.TypeExpense, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("summary: previous expenses: %w", err)
	}

	// Back out the current month's net delta rather than issuing a second
	// unbounded query. Approximate: assumes nothing outside the current
	// month changed since the last month boundary.
	previousBalance := totalBalance - (monthlyIncome - monthlyExpenses)
	savings := math.Max(totalBalance, 0)

	return &FinancialSummary{
		TotalBalance:    Round2(totalBalance),
		MonthlyIncome:   Round2(monthlyIncome),
		MonthlyExpenses: Round2(monthlyExpenses),
		Savings:         Round2(savings),
		Changes: Changes{
			Balance:  PercentChange(totalBalance, previousBalance),
			Income:   PercentChange(monthlyIncome, prevIncome),
			Expenses: PercentChange(monthlyExpenses, prevExpenses),
			Savings:  PercentChange(savings, math.Max(previousBalance, 0)),
		},
	}, nil
}

// PercentChange formats the relative change from previous to current as a
// signed percentage string with one decimal place. Zero previous values are
// guarded: "0%" when both are zero, otherwise a full swing by sign of current.
func PercentChange(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}
		if current > 0 {
			return "+100.0%"
		}
		return "-100.0%"
	}
	change := (current - previous) / previous * 100
	return fmt.Sprintf("%+.1f%%", change)
}

// Round2 rounds to two decimal places for response boundaries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthStart returns the first calendar day of d's month.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// PreviousMonth returns the first and last calendar day of the month before
// d's month. Handles January and 28–31 day months.
func PreviousMonth(d time.Time) (time.Time, time.Time) {
	end := MonthStart(d).AddDate(0, 0, -1)
	return MonthStart(end), end
}

// MonthEnd returns the last calendar day of d's month.
func MonthEnd(d time.Time) time.Time {
	return MonthStart(d).AddDate(0, 1, -1)
}
