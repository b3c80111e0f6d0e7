package ledger

import (
	"context"
	"time"
)

// Reader is a read-only query interface over transactions, categories, and
// budgets, always scoped to one user and, where it applies, a date window.
// Implementations never fail on empty input: aggregate queries return zero
// values when no rows match. Date windows are inclusive on both ends.
type Reader interface {
	// SumExpenses returns the sum of absolute amounts of expense-classified
	// transactions for one category within [start, end].
	SumExpenses(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error)

	// SumByType returns the sum of absolute amounts of transactions of the
	// given type within [start, end], across all categories.
	SumByType(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error)

	// TotalBalance returns the all-time signed sum of the user's transactions.
	TotalBalance(ctx context.Context, userID int64) (float64, error)

	// ExpenseTotalsByCategory returns per-category expense totals within
	// [start, end], ordered by amount descending.
	ExpenseTotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]CategoryTotal, error)

	// MonthlyTotals returns per-month income and expense totals for
	// transactions dated on or after since, in chronological order.
	MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]MonthlyTotal, error)

	// RecentEntries returns the most recent transactions with category names
	// resolved, newest first.
	RecentEntries(ctx context.Context, userID int64, limit int) ([]Entry, error)

	// EntriesInRange returns all transactions in the optional window, newest
	// first. A nil bound leaves that side of the window open.
	EntriesInRange(ctx context.Context, userID int64, start, end *time.Time) ([]Entry, error)

	// CategoryName resolves a category id to its name. Returns "" (no error)
	// when the category does not exist so callers can degrade to a sentinel.
	CategoryName(ctx context.Context, categoryID int64) (string, error)
}
