package ledger

import "time"

// Canonical transaction classification. The type field is the single source
// of truth for income/expense classification; the write side normalizes the
// amount sign to agree with it.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Entry is a read-only view of a transaction with its category name resolved.
type Entry struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CategoryTotal is an aggregated expense total for one category.
type CategoryTotal struct {
	CategoryID int64   `json:"categoryId"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"transactionCount"`
}

// MonthlyTotal holds income and expense totals for one calendar month.
type MonthlyTotal struct {
	Year     int
	Month    int
	Income   float64
	Expenses float64
}
