package budget

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

type MockBudgetRepo struct {
	CreateFunc          func(ctx context.Context, params CreateParams) (*Budget, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*Budget, error)
	ListByUserIDFunc    func(ctx context.Context, userID int64) ([]Budget, error)
	ListOverlappingFunc func(ctx context.Context, userID int64, start, end time.Time) ([]Budget, error)
	UpdateFunc          func(ctx context.Context, id int64, params UpdateParams) (*Budget, error)
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (m *MockBudgetRepo) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	return m.CreateFunc(ctx, params)
}

func (m *MockBudgetRepo) GetByID(ctx context.Context, id int64) (*Budget, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockBudgetRepo) ListByUserID(ctx context.Context, userID int64) ([]Budget, error) {
	return m.ListByUserIDFunc(ctx, userID)
}

func (m *MockBudgetRepo) ListOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]Budget, error) {
	return m.ListOverlappingFunc(ctx, userID, start, end)
}

func (m *MockBudgetRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error) {
	return m.UpdateFunc(ctx, id, params)
}

func (m *MockBudgetRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockReader struct {
	SumExpensesFunc             func(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error)
	SumByTypeFunc               func(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error)
	TotalBalanceFunc            func(ctx context.Context, userID int64) (float64, error)
	ExpenseTotalsByCategoryFunc func(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error)
	MonthlyTotalsFunc           func(ctx context.Context, userID int64, since time.Time) ([]ledger.MonthlyTotal, error)
	RecentEntriesFunc           func(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error)
	EntriesInRangeFunc          func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error)
	CategoryNameFunc            func(ctx context.Context, categoryID int64) (string, error)
}

func (m *MockReader) SumExpenses(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
	return m.SumExpensesFunc(ctx, userID, categoryID, start, end)
}

func (m *MockReader) SumByType(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
	return m.SumByTypeFunc(ctx, userID, txType, start, end)
}

func (m *MockReader) TotalBalance(ctx context.Context, userID int64) (float64, error) {
	return m.TotalBalanceFunc(ctx, userID)
}

func (m *MockReader) ExpenseTotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error) {
	return m.ExpenseTotalsByCategoryFunc(ctx, userID, start, end)
}

func (m *MockReader) MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]ledger.MonthlyTotal, error) {
	return m.MonthlyTotalsFunc(ctx, userID, since)
}

func (m *MockReader) RecentEntries(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
	return m.RecentEntriesFunc(ctx, userID, limit)
}

func (m *MockReader) EntriesInRange(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
	return m.EntriesInRangeFunc(ctx, userID, start, end)
}

func (m *MockReader) CategoryName(ctx context.Context, categoryID int64) (string, error) {
	return m.CategoryNameFunc(ctx, categoryID)
}

func newTestEvaluator(spent float64, categoryName string) (*Evaluator, *MockReader) {
	reader := &MockReader{
		SumExpensesFunc: func(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
			return spent, nil
		},
		CategoryNameFunc: func(ctx context.Context, categoryID int64) (string, error) {
			return categoryName, nil
		},
	}
	return NewEvaluator(&MockBudgetRepo{}, metrics.NewAggregator(reader), reader), reader
}

func TestEvaluateStatus(t *testing.T) {
	budget := &Budget{
		ID:             1,
		UserID:         1,
		CategoryID:     10,
		Amount:         500,
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
	}
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		spent      float64
		wantStatus string
		wantPct    float64
	}{
		{"under threshold", 399, StatusGood, 79.8},
		{"at threshold", 400, StatusWarning, 80.0},
		{"above threshold", 401, StatusWarning, 80.2},
		{"at limit", 500, StatusWarning, 100.0},
		{"over limit", 501, StatusOver, 100.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, _ := newTestEvaluator(tt.spent, "Food")
			got, err := ev.Evaluate(context.Background(), budget, today)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.PercentageUsed != tt.wantPct {
				t.Errorf("PercentageUsed = %v, want %v", got.PercentageUsed, tt.wantPct)
			}
		})
	}
}

func TestEvaluateDayMathAndPace(t *testing.T) {
	budget := &Budget{
		ID:             1,
		UserID:         1,
		CategoryID:     10,
		Amount:         620,
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
	}

	t.Run("mid window", func(t *testing.T) {
		ev, _ := newTestEvaluator(400, "Food")
		got, err := ev.Evaluate(context.Background(), budget, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if got.DaysTotal != 31 {
			t.Errorf("DaysTotal = %d, want 31", got.DaysTotal)
		}
		if got.DaysRemaining != 16 {
			t.Errorf("DaysRemaining = %d, want 16", got.DaysRemaining)
		}
		// 620 * 15/31 = 300 expected, 400 > 330 so over pace.
		if got.ExpectedSpending != 300 {
			t.Errorf("ExpectedSpending = %v, want 300", got.ExpectedSpending)
		}
		if got.SpendingPace != PaceOver {
			t.Errorf("SpendingPace = %q, want %q", got.SpendingPace, PaceOver)
		}
		if !got.IsActive {
			t.Error("IsActive = false, want true")
		}
	})

	t.Run("before window", func(t *testing.T) {
		ev, _ := newTestEvaluator(0, "Food")
		got, err := ev.Evaluate(context.Background(), budget, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if got.ExpectedSpending != 0 {
			t.Errorf("ExpectedSpending = %v, want 0", got.ExpectedSpending)
		}
		if got.DaysRemaining != 49 {
			t.Errorf("DaysRemaining = %d, want 49", got.DaysRemaining)
		}
		if got.SpendingPace != PaceOnTrack {
			t.Errorf("SpendingPace = %q, want %q", got.SpendingPace, PaceOnTrack)
		}
		if got.IsActive {
			t.Error("IsActive = true, want false")
		}
	})

	t.Run("after window", func(t *testing.T) {
		ev, _ := newTestEvaluator(500, "Food")
		got, err := ev.Evaluate(context.Background(), budget, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if got.DaysRemaining != 0 {
			t.Errorf("DaysRemaining = %d, want 0", got.DaysRemaining)
		}
		if got.ExpectedSpending != 620 {
			t.Errorf("ExpectedSpending = %v, want 620", got.ExpectedSpending)
		}
		if got.IsActive {
			t.Error("IsActive = true, want false")
		}
	})
}

func TestEvaluateUnknownCategory(t *testing.T) {
	budget := &Budget{
		ID:             1,
		UserID:         1,
		CategoryID:     99,
		Amount:         100,
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
	}
	ev, _ := newTestEvaluator(10, "")
	got, err := ev.Evaluate(context.Background(), budget, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.CategoryName != UnknownCategory {
		t.Errorf("CategoryName = %q, want %q", got.CategoryName, UnknownCategory)
	}
}

func TestAlertsForUserOrderingAndMessages(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	// Spend per category: 85% warning, 120% exceeded, 95% warning, 50% good.
	spentByCategory := map[int64]float64{10: 85, 20: 120, 30: 95, 40: 50}
	names := map[int64]string{10: "Food", 20: "Transport", 30: "Leisure", 40: "Bills"}

	reader := &MockReader{
		SumExpensesFunc: func(ctx context.Context, userID, categoryID int64, s, e time.Time) (float64, error) {
			return spentByCategory[categoryID], nil
		},
		CategoryNameFunc: func(ctx context.Context, categoryID int64) (string, error) {
			return names[categoryID], nil
		},
	}
	repo := &MockBudgetRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64) ([]Budget, error) {
			budgets := make([]Budget, 0, 4)
			for i, catID := range []int64{10, 20, 30, 40} {
				budgets = append(budgets, Budget{
					ID:             int64(i + 1),
					UserID:         userID,
					CategoryID:     catID,
					Amount:         100,
					StartDate:      start,
					EndDate:        end,
					AlertThreshold: 80,
				})
			}
			return budgets, nil
		},
	}

	ev := NewEvaluator(repo, metrics.NewAggregator(reader), reader)
	alerts, err := ev.AlertsForUser(context.Background(), 1, today)
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}

	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3", len(alerts))
	}
	wantSeverities := []string{SeverityHigh, SeverityMedium, SeverityLow}
	for i, want := range wantSeverities {
		if alerts[i].Severity != want {
			t.Errorf("alerts[%d].Severity = %q, want %q", i, alerts[i].Severity, want)
		}
	}
	if alerts[0].ID != "alert-2-exceeded" {
		t.Errorf("alerts[0].ID = %q, want alert-2-exceeded", alerts[0].ID)
	}
	if alerts[0].Message != "Has excedido el presupuesto en €20.00" {
		t.Errorf("alerts[0].Message = %q", alerts[0].Message)
	}
	if alerts[1].ID != "alert-3-warning" {
		t.Errorf("alerts[1].ID = %q, want alert-3-warning", alerts[1].ID)
	}
	if alerts[1].Message != "Has usado el 95% de tu presupuesto (€95 de €100)" {
		t.Errorf("alerts[1].Message = %q", alerts[1].Message)
	}
	if alerts[2].ID != "alert-1-warning" {
		t.Errorf("alerts[2].ID = %q, want alert-1-warning", alerts[2].ID)
	}
}

func TestCurrentMonthOverviewClampsWindow(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var gotStart, gotEnd time.Time
	reader := &MockReader{
		SumExpensesFunc: func(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
			gotStart, gotEnd = start, end
			return 150, nil
		},
		CategoryNameFunc: func(ctx context.Context, categoryID int64) (string, error) {
			return "Food", nil
		},
	}
	repo := &MockBudgetRepo{
		ListOverlappingFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]Budget, error) {
			return []Budget{{
				ID:             1,
				UserID:         userID,
				CategoryID:     10,
				Amount:         300,
				StartDate:      time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
				EndDate:        time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
				AlertThreshold: 80,
			}}, nil
		},
	}

	ev := NewEvaluator(repo, metrics.NewAggregator(reader), reader)
	items, err := ev.CurrentMonthOverview(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("CurrentMonthOverview() error = %v", err)
	}

	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	if !gotStart.Equal(wantStart) {
		t.Errorf("spend window start = %v, want %v", gotStart, wantStart)
	}
	if !gotEnd.Equal(wantEnd) {
		t.Errorf("spend window end = %v, want %v", gotEnd, wantEnd)
	}

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Remaining != 150 {
		t.Errorf("Remaining = %v, want 150", items[0].Remaining)
	}
	if items[0].Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", items[0].Percentage)
	}
	if items[0].Status != StatusGood {
		t.Errorf("Status = %q, want %q", items[0].Status, StatusGood)
	}
}

func TestOverviewForUser(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	spentByCategory := map[int64]float64{10: 250, 20: 120}
	reader := &MockReader{
		SumExpensesFunc: func(ctx context.Context, userID, categoryID int64, s, e time.Time) (float64, error) {
			return spentByCategory[categoryID], nil
		},
		CategoryNameFunc: func(ctx context.Context, categoryID int64) (string, error) {
			return "X", nil
		},
	}
	repo := &MockBudgetRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64) ([]Budget, error) {
			return []Budget{
				{ID: 1, UserID: userID, CategoryID: 10, Amount: 200, StartDate: start, EndDate: end, AlertThreshold: 80},
				{ID: 2, UserID: userID, CategoryID: 20, Amount: 300, StartDate: start, EndDate: end, AlertThreshold: 80},
			}, nil
		},
	}

	ev := NewEvaluator(repo, metrics.NewAggregator(reader), reader)
	got, err := ev.OverviewForUser(context.Background(), 1, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OverviewForUser() error = %v", err)
	}

	if got.TotalBudget != 500 {
		t.Errorf("TotalBudget = %v, want 500", got.TotalBudget)
	}
	if got.TotalSpent != 370 {
		t.Errorf("TotalSpent = %v, want 370", got.TotalSpent)
	}
	if got.Available != 130 {
		t.Errorf("Available = %v, want 130", got.Available)
	}
	if got.PercentageUsed != 74 {
		t.Errorf("PercentageUsed = %v, want 74", got.PercentageUsed)
	}
	if got.BudgetsExceeded != 1 {
		t.Errorf("BudgetsExceeded = %d, want 1", got.BudgetsExceeded)
	}
	if got.TotalBudgets != 2 {
		t.Errorf("TotalBudgets = %d, want 2", got.TotalBudgets)
	}
}

func TestPeriodWindow(t *testing.T) {
	asOf := time.Date(2025, 5, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
	}{
		{PeriodWeekly, time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarterly, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := periodWindow(tt.period, asOf)
			if err != nil {
				t.Fatalf("periodWindow() error = %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("end = %v", end)
			}
		})
	}

	if _, _, err := periodWindow("decade", asOf); err == nil {
		t.Error("periodWindow() with invalid period: want error")
	}
}
