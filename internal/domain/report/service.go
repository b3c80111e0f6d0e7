package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

// UncategorizedName labels entries whose category no longer exists.
const UncategorizedName = "Sin categoría"

type Service struct {
	reader ledger.Reader
}

func NewService(reader ledger.Reader) *Service {
	return &Service{reader: reader}
}

// Generate builds a report over the given window. Nil bounds leave that side
// of the window open. An empty window yields a zero report, never an error.
func (s *Service) Generate(ctx context.Context, userID int64, start, end *time.Time) (*Report, error) {
	entries, err := s.reader.EntriesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	r := &Report{
		TopCategories: []CategoryBalance{},
		Transactions:  []ledger.Entry{},
	}
	if len(entries) == 0 {
		return r, nil
	}

	byCategory := make(map[string]float64)
	for _, e := range entries {
		switch e.Type {
		case ledger.TypeIncome:
			r.TotalIncome += math.Abs(e.Amount)
		case ledger.TypeExpense:
			r.TotalExpenses += math.Abs(e.Amount)
		}

		name := e.Category
		if name == "" {
			name = UncategorizedName
		}
		byCategory[name] += e.Amount
	}
	r.NetBalance = r.TotalIncome - r.TotalExpenses

	categories := make([]CategoryBalance, 0, len(byCategory))
	for name, balance := range byCategory {
		categories = append(categories, CategoryBalance{Category: name, NetBalance: metrics.Round2(balance)})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].NetBalance != categories[j].NetBalance {
			return categories[i].NetBalance > categories[j].NetBalance
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > 5 {
		categories = categories[:5]
	}
	r.TopCategories = categories

	r.TotalIncome = metrics.Round2(r.TotalIncome)
	r.TotalExpenses = metrics.Round2(r.TotalExpenses)
	r.NetBalance = metrics.Round2(r.NetBalance)
	r.Transactions = entries
	return r, nil
}

// Weekly reports on the 7 days up to asOf.
func (s *Service) Weekly(ctx context.Context, userID int64, asOf time.Time) (*Report, error) {
	start := asOf.AddDate(0, 0, -7)
	return s.Generate(ctx, userID, &start, &asOf)
}

// Monthly reports on the 30 days up to asOf.
func (s *Service) Monthly(ctx context.Context, userID int64, asOf time.Time) (*Report, error) {
	start := asOf.AddDate(0, 0, -30)
	return s.Generate(ctx, userID, &start, &asOf)
}
