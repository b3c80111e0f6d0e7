package budget

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

// Evaluator derives budget state from current transaction data. Nothing it
// produces is persisted.
type Evaluator struct {
	budgets Repository
	agg     *metrics.Aggregator
	reader  ledger.Reader
}

func NewEvaluator(budgets Repository, agg *metrics.Aggregator, reader ledger.Reader) *Evaluator {
	return &Evaluator{budgets: budgets, agg: agg, reader: reader}
}

// Evaluate computes the live state of a single budget as of the given day.
func (e *Evaluator) Evaluate(ctx context.Context, b *Budget, today time.Time) (*Evaluation, error) {
	spent, err := e.agg.SumSpent(ctx, b.UserID, b.CategoryID, b.StartDate, b.EndDate)
	if err != nil {
		return nil, fmt.Errorf("sum spent for budget %d: %w", b.ID, err)
	}

	name, err := e.reader.CategoryName(ctx, b.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category name for budget %d: %w", b.ID, err)
	}
	if name == "" {
		name = UnknownCategory
	}

	pct := 0.0
	if b.Amount > 0 {
		pct = spent / b.Amount * 100
	}

	status := StatusGood
	switch {
	case spent > b.Amount:
		status = StatusOver
	case pct >= b.AlertThreshold:
		status = StatusWarning
	}

	day := dateOnly(today)
	start := dateOnly(b.StartDate)
	end := dateOnly(b.EndDate)

	daysTotal := daysBetween(start, end) + 1
	daysElapsed := daysBetween(start, day) + 1
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	if daysElapsed > daysTotal {
		daysElapsed = daysTotal
	}
	daysRemaining := daysBetween(day, end)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	expected := b.Amount * float64(daysElapsed) / float64(daysTotal)

	pace := PaceOnTrack
	switch {
	case spent > expected*1.1:
		pace = PaceOver
	case spent < expected*0.9:
		pace = PaceUnder
	}

	return &Evaluation{
		BudgetID:         b.ID,
		CategoryName:     name,
		BudgetAmount:     b.Amount,
		SpentAmount:      metrics.Round2(spent),
		PercentageUsed:   metrics.Round2(pct),
		Status:           status,
		DaysRemaining:    daysRemaining,
		DaysTotal:        daysTotal,
		ExpectedSpending: metrics.Round2(expected),
		SpendingPace:     pace,
		IsActive:         !day.Before(start) && !day.After(end),
	}, nil
}

// PerformanceForUser evaluates every budget the user owns, in repository
// order.
func (e *Evaluator) PerformanceForUser(ctx context.Context, userID int64, today time.Time) ([]Evaluation, error) {
	budgets, err := e.budgets.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	evals := make([]Evaluation, 0, len(budgets))
	for i := range budgets {
		ev, err := e.Evaluate(ctx, &budgets[i], today)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *ev)
	}
	return evals, nil
}

var severityRank = map[string]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// AlertsForUser turns budget evaluations into alerts, most urgent first.
// Budgets in good standing produce nothing.
func (e *Evaluator) AlertsForUser(ctx context.Context, userID int64, today time.Time) ([]Alert, error) {
	evals, err := e.PerformanceForUser(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(evals))
	for _, ev := range evals {
		switch ev.Status {
		case StatusOver:
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("alert-%d-exceeded", ev.BudgetID),
				BudgetID: ev.BudgetID,
				Type:     "exceeded",
				Category: ev.CategoryName,
				Message:  fmt.Sprintf("Has excedido el presupuesto en €%.2f", ev.SpentAmount-ev.BudgetAmount),
				Severity: SeverityHigh,
			})
		case StatusWarning:
			severity := SeverityLow
			if ev.PercentageUsed >= 90 {
				severity = SeverityMedium
			}
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("alert-%d-warning", ev.BudgetID),
				BudgetID: ev.BudgetID,
				Type:     "warning",
				Category: ev.CategoryName,
				Message:  fmt.Sprintf("Has usado el %.0f%% de tu presupuesto (€%.0f de €%.0f)", ev.PercentageUsed, ev.SpentAmount, ev.BudgetAmount),
				Severity: severity,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts, nil
}

// OverviewForUser totals all budgets the user owns.
func (e *Evaluator) OverviewForUser(ctx context.Context, userID int64, today time.Time) (*Overview, error) {
	evals, err := e.PerformanceForUser(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	return overviewOf(evals), nil
}

func overviewOf(evals []Evaluation) *Overview {
	o := &Overview{TotalBudgets: len(evals)}
	for _, ev := range evals {
		o.TotalBudget += ev.BudgetAmount
		o.TotalSpent += ev.SpentAmount
		if ev.Status == StatusOver {
			o.BudgetsExceeded++
		}
	}
	o.Available = metrics.Round2(o.TotalBudget - o.TotalSpent)
	if o.TotalBudget > 0 {
		o.PercentageUsed = metrics.Round2(o.TotalSpent / o.TotalBudget * 100)
	}
	o.TotalBudget = metrics.Round2(o.TotalBudget)
	o.TotalSpent = metrics.Round2(o.TotalSpent)
	return o
}

// CurrentMonthOverview reports, for each budget overlapping the current
// calendar month, the spend inside the clamped month window only.
func (e *Evaluator) CurrentMonthOverview(ctx context.Context, userID int64, asOf time.Time) ([]MonthItem, error) {
	monthStart := metrics.MonthStart(asOf)
	monthEnd := metrics.MonthEnd(asOf)

	budgets, err := e.budgets.ListOverlapping(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("list overlapping budgets: %w", err)
	}

	items := make([]MonthItem, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]

		start := dateOnly(b.StartDate)
		if start.Before(monthStart) {
			start = monthStart
		}
		end := dateOnly(b.EndDate)
		if end.After(monthEnd) {
			end = monthEnd
		}

		spent, err := e.agg.SumSpent(ctx, userID, b.CategoryID, start, end)
		if err != nil {
			return nil, fmt.Errorf("sum spent for budget %d: %w", b.ID, err)
		}

		name, err := e.reader.CategoryName(ctx, b.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category name for budget %d: %w", b.ID, err)
		}
		if name == "" {
			name = UnknownCategory
		}

		pct := 0.0
		if b.Amount > 0 {
			pct = spent / b.Amount * 100
		}
		status := StatusGood
		switch {
		case spent > b.Amount:
			status = StatusOver
		case pct >= b.AlertThreshold:
			status = StatusWarning
		}

		items = append(items, MonthItem{
			Category:   name,
			Spent:      metrics.Round2(spent),
			Budget:     b.Amount,
			Percentage: metrics.Round2(pct),
			Remaining:  metrics.Round2(b.Amount - spent),
			Status:     status,
		})
	}
	return items, nil
}

// Analytics composes the overview, per-category breakdown, alerts and trend
// for one analysis window ending at asOf.
func (e *Evaluator) Analytics(ctx context.Context, userID int64, period string, asOf time.Time) (*Analytics, error) {
	start, end, err := periodWindow(period, asOf)
	if err != nil {
		return nil, err
	}

	budgets, err := e.budgets.ListOverlapping(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list overlapping budgets: %w", err)
	}

	evals := make([]Evaluation, 0, len(budgets))
	byCategory := make(map[int64]*Budget, len(budgets))
	for i := range budgets {
		ev, err := e.Evaluate(ctx, &budgets[i], asOf)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *ev)
		byCategory[budgets[i].CategoryID] = &budgets[i]
	}

	totals, err := e.agg.BreakdownByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	breakdown := make([]CategoryBreakdown, 0, len(totals))
	for _, t := range totals {
		cb := CategoryBreakdown{
			CategoryID:       t.CategoryID,
			CategoryName:     t.Category,
			TotalSpent:       metrics.Round2(t.Amount),
			TransactionCount: t.Count,
		}
		if b, ok := byCategory[t.CategoryID]; ok && b.Amount > 0 {
			amount := b.Amount
			pct := metrics.Round2(t.Amount / b.Amount * 100)
			cb.BudgetAmount = &amount
			cb.PercentageOfBudget = &pct
		}
		breakdown = append(breakdown, cb)
	}

	alerts := make([]Alert, 0, len(evals))
	for _, ev := range evals {
		switch ev.Status {
		case StatusOver:
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("alert-%d-exceeded", ev.BudgetID),
				BudgetID: ev.BudgetID,
				Type:     "exceeded",
				Category: ev.CategoryName,
				Message:  fmt.Sprintf("Has excedido el presupuesto en €%.2f", ev.SpentAmount-ev.BudgetAmount),
				Severity: SeverityHigh,
			})
		case StatusWarning:
			severity := SeverityLow
			if ev.PercentageUsed >= 90 {
				severity = SeverityMedium
			}
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("alert-%d-warning", ev.BudgetID),
				BudgetID: ev.BudgetID,
				Type:     "warning",
				Category: ev.CategoryName,
				Message:  fmt.Sprintf("Has usado el %.0f%% de tu presupuesto (€%.0f de €%.0f)", ev.PercentageUsed, ev.SpentAmount, ev.BudgetAmount),
				Severity: severity,
			})
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})

	trends, err := e.trendsFor(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Period:            period,
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
		Overview:          overviewOf(evals),
		CategoryBreakdown: breakdown,
		Alerts:            alerts,
		Trends:            trends,
	}, nil
}

// trendsFor compares window spending against the immediately preceding window
// of equal length.
func (e *Evaluator) trendsFor(ctx context.Context, userID int64, start, end time.Time) (Trends, error) {
	income, err := e.reader.SumByType(ctx, userID, ledger.TypeIncome, start, end)
	if err != nil {
		return Trends{}, fmt.Errorf("sum income: %w", err)
	}
	expenses, err := e.reader.SumByType(ctx, userID, ledger.TypeExpense, start, end)
	if err != nil {
		return Trends{}, fmt.Errorf("sum expenses: %w", err)
	}

	span := end.Sub(start)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.Add(-span)
	prevExpenses, err := e.reader.SumByType(ctx, userID, ledger.TypeExpense, prevStart, prevEnd)
	if err != nil {
		return Trends{}, fmt.Errorf("sum previous expenses: %w", err)
	}

	trend := "stable"
	switch {
	case prevExpenses > 0 && expenses > prevExpenses*1.1:
		trend = "increasing"
	case prevExpenses > 0 && expenses < prevExpenses*0.9:
		trend = "decreasing"
	case prevExpenses == 0 && expenses > 0:
		trend = "increasing"
	}

	rate := 0.0
	if income > 0 {
		rate = metrics.Round2((income - expenses) / income * 100)
	}
	return Trends{SpendingTrend: trend, SavingsRate: rate}, nil
}

func periodWindow(period string, asOf time.Time) (time.Time, time.Time, error) {
	end := dateOnly(asOf)
	switch period {
	case PeriodWeekly:
		return end.AddDate(0, 0, -7), end, nil
	case PeriodMonthly, "":
		return metrics.MonthStart(end), end, nil
	case PeriodQuarterly:
		return end.AddDate(0, 0, -90), end, nil
	case PeriodYearly:
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location()), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
