package report

import "fintrack/internal/domain/ledger"

// CategoryBalance is the signed net total of one category over the report
// window. Income-heavy categories come out positive, expense-heavy negative.
type CategoryBalance struct {
	Category   string  `json:"category"`
	NetBalance float64 `json:"netBalance"`
}

// Report is the computed financial report for one date window.
type Report struct {
	TotalIncome   float64           `json:"totalIncome"`
	TotalExpenses float64           `json:"totalExpenses"`
	NetBalance    float64           `json:"netBalance"`
	TopCategories []CategoryBalance `json:"topCategories"`
	Transactions  []ledger.Entry    `json:"transactions"`
}
