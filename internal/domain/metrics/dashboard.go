package metrics

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/domain/ledger"
)

// MonthlyPoint is one month of the income/expense chart series.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Incomes  float64 `json:"incomes"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// CategoryAmount is one bar of the category expense chart.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

var monthNames = [13]string{"", "Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// Dashboard provides the chart and list queries backing the main dashboard.
type Dashboard struct {
	reader ledger.Reader
}

func NewDashboard(reader ledger.Reader) *Dashboard {
	return &Dashboard{reader: reader}
}

// MonthlySeries returns income/expense/balance per calendar month for the
// last months months (including the current one), oldest first.
func (d *Dashboard) MonthlySeries(ctx context.Context, userID int64, months int, asOf time.Time) ([]MonthlyPoint, error) {
	since := MonthStart(asOf.AddDate(0, -(months - 1), 0))

	totals, err := d.reader.MonthlyTotals(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("monthly series: %w", err)
	}

	points := make([]MonthlyPoint, 0, len(totals))
	for _, t := range totals {
		name := monthNames[0]
		if t.Month >= 1 && t.Month <= 12 {
			name = monthNames[t.Month]
		}
		points = append(points, MonthlyPoint{
			Month:    name,
			Incomes:  Round2(t.Income),
			Expenses: Round2(t.Expenses),
			Balance:  Round2(t.Income - t.Expenses),
		})
	}
	return points, nil
}

// CategoryChart returns current-month expense totals per category,
// largest first.
func (d *Dashboard) CategoryChart(ctx context.Context, userID int64, asOf time.Time) ([]CategoryAmount, error) {
	totals, err := d.reader.ExpenseTotalsByCategory(ctx, userID, MonthStart(asOf), asOf)
	if err != nil {
		return nil, fmt.Errorf("category chart: %w", err)
	}

	data := make([]CategoryAmount, 0, len(totals))
	for _, t := range totals {
		data = append(data, CategoryAmount{Category: t.Category, Amount: Round2(t.Amount)})
	}
	return data, nil
}

// RecentTransactions returns the newest transactions with category names.
func (d *Dashboard) RecentTransactions(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
	entries, err := d.reader.RecentEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	for i := range entries {
		entries[i].Amount = Round2(entries[i].Amount)
	}
	return entries, nil
}
