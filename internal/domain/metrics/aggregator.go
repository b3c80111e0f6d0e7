package metrics

import (
	"context"
	"sort"
	"time"

	"fintrack/internal/domain/ledger"
)

// Aggregator sums transaction amounts by category and time window.
// Classification is always by the canonical type field, never by amount sign.
type Aggregator struct {
	reader ledger.Reader
}

func NewAggregator(reader ledger.Reader) *Aggregator {
	return &Aggregator{reader: reader}
}

// SumSpent returns the absolute expense total for one category within
// [start, end] inclusive. Returns 0 when no transactions match.
func (a *Aggregator) SumSpent(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
	return a.reader.SumExpenses(ctx, userID, categoryID, start, end)
}

// BreakdownByCategory returns per-category expense totals within the window,
// ordered by amount descending with ties broken by category name ascending.
func (a *Aggregator) BreakdownByCategory(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error) {
	totals, err := a.reader.ExpenseTotalsByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})

	return totals, nil
}
