package insights

import (
	"fmt"
	"math"
	"sort"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

// FallbackInsights derives up to three rule-based insights from aggregated
// data. This is the path taken whenever the LLM is unavailable or returns
// output that cannot be parsed, so it must never fail.
func FallbackInsights(summary *metrics.FinancialSummary, exceeded []ExceededBudget, categoryExpenses map[string]float64) []Insight {
	insights := make([]Insight, 0, 3)

	income := summary.MonthlyIncome
	expenses := summary.MonthlyExpenses

	if expenses > 0 {
		predicted := expenses * 1.05
		insights = append(insights, Insight{
			Type:       "prediction",
			Title:      "Predicción de Gastos",
			Message:    fmt.Sprintf("Basado en tu patrón, gastarás aproximadamente €%.2f este mes", predicted),
			Confidence: "Media",
			Icon:       "brain",
			Color:      "primary",
			Amount:     &predicted,
		})
	}

	if len(exceeded) > 0 {
		first := exceeded[0]
		over := first.ExceededBy
		insights = append(insights, Insight{
			Type:       "warning",
			Title:      "Alerta de Presupuesto",
			Message:    fmt.Sprintf("%s excedió el límite en €%.2f", first.Category, over),
			Confidence: "Crítico",
			Icon:       "alert-triangle",
			Color:      "destructive",
			Amount:     &over,
			Category:   first.Category,
		})
	} else if expenses > income*0.9 {
		ratio := 0.0
		if income > 0 {
			ratio = expenses / income * 100
		}
		insights = append(insights, Insight{
			Type:       "warning",
			Title:      "Gastos Elevados",
			Message:    fmt.Sprintf("Tus gastos representan el %.1f%% de tus ingresos", ratio),
			Confidence: "Alta",
			Icon:       "alert-triangle",
			Color:      "destructive",
		})
	}

	if name, amount, ok := topCategory(categoryExpenses); ok {
		saving := amount * 0.15
		insights = append(insights, Insight{
			Type:       "tip",
			Title:      "Oportunidad de Ahorro",
			Message:    fmt.Sprintf("Podrías ahorrar €%.2f/mes optimizando gastos en %s", saving, name),
			Confidence: "Media",
			Icon:       "lightbulb",
			Color:      "secondary",
			Amount:     &saving,
			Category:   name,
		})
	} else {
		insights = append(insights, Insight{
			Type:       "tip",
			Title:      "Consejo Financiero",
			Message:    "Establece presupuestos por categoría para controlar mejor tus gastos",
			Confidence: "Alta",
			Icon:       "lightbulb",
			Color:      "secondary",
		})
	}

	return insights
}

// topCategory returns the highest-spend category. Ties break on name
// ascending so output is stable across runs.
func topCategory(categoryExpenses map[string]float64) (string, float64, bool) {
	best := ""
	bestAmount := 0.0
	found := false
	for name, amount := range categoryExpenses {
		if !found || amount > bestAmount || (amount == bestAmount && name < best) {
			best, bestAmount, found = name, amount, true
		}
	}
	return best, bestAmount, found
}

// SpendingPredictions forecasts per-category spending from historical
// expenses. Categories with fewer than three expense observations are
// skipped. Output is ordered by category name.
func SpendingPredictions(entries []ledger.Entry, timeframe string) []Prediction {
	if len(entries) == 0 {
		return []Prediction{}
	}

	byCategory := make(map[string][]float64)
	for _, e := range entries {
		if e.Type == ledger.TypeExpense {
			byCategory[e.Category] = append(byCategory[e.Category], math.Abs(e.Amount))
		}
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	predictions := make([]Prediction, 0, len(names))
	for _, name := range names {
		amounts := byCategory[name]
		if len(amounts) < 3 {
			continue
		}

		mean := 0.0
		for _, a := range amounts {
			mean += a
		}
		mean /= float64(len(amounts))

		variance := 0.0
		for _, a := range amounts {
			variance += (a - mean) * (a - mean)
		}
		stdev := math.Sqrt(variance / float64(len(amounts)))

		confidence := 0.5
		if mean > 0 {
			confidence = 1 - stdev/mean
		}
		confidence = math.Max(0, math.Min(0.9, confidence))

		recent := amounts
		if len(recent) > 4 {
			recent = recent[len(recent)-4:]
		}
		current := 0.0
		for _, a := range recent {
			current += a
		}
		current /= float64(len(recent))

		variability := "Alta"
		if confidence > 0.7 {
			variability = "Baja"
		}

		predictions = append(predictions, Prediction{
			Type:       "spending",
			Current:    metrics.Round2(current),
			Predicted:  metrics.Round2(mean),
			Confidence: metrics.Round2(confidence),
			Timeframe:  timeframe,
			Factors:    []string{"Categoría: " + name, "Variabilidad: " + variability},
		})
	}
	return predictions
}

var forecastMonths = map[string]int{
	"3months": 3,
	"6months": 6,
	"1year":   12,
}

// Forecast projects the balance over the requested timeframe under three
// linear scenarios. Returns nil when there is no history to extrapolate.
func Forecast(entries []ledger.Entry, timeframe string) *BalanceForecast {
	if len(entries) == 0 {
		return nil
	}

	income := 0.0
	expenses := 0.0
	for _, e := range entries {
		switch e.Type {
		case ledger.TypeIncome:
			income += math.Abs(e.Amount)
		case ledger.TypeExpense:
			expenses += math.Abs(e.Amount)
		}
	}

	// Entry count stands in for observed days when deriving monthly rates.
	span := math.Max(1, float64(len(entries))/30)
	monthlyIncome := income / span
	monthlyExpenses := expenses / span
	netMonthly := monthlyIncome - monthlyExpenses
	balance := income - expenses

	months, ok := forecastMonths[timeframe]
	if !ok {
		months = 6
	}
	drift := netMonthly * float64(months)

	return &BalanceForecast{
		Timeframe: timeframe,
		Scenarios: ForecastScenarios{
			Optimistic:   ForecastScenario{Balance: metrics.Round2(balance + drift*1.15), Probability: 0.25},
			Realistic:    ForecastScenario{Balance: metrics.Round2(balance + drift), Probability: 0.50},
			Conservative: ForecastScenario{Balance: metrics.Round2(balance + drift*0.85), Probability: 0.25},
		},
		KeyFactors: []string{
			fmt.Sprintf("Ingreso mensual promedio: €%.2f", monthlyIncome),
			fmt.Sprintf("Gasto mensual promedio: €%.2f", monthlyExpenses),
			fmt.Sprintf("Ahorro neto mensual: €%.2f", netMonthly),
		},
		Confidence: 0.75,
	}
}

// incomeVolatility is a placeholder factor until income history is deep
// enough to measure it.
const incomeVolatility = 0.3

// AnalyzeRisk scores financial risk as an equally weighted composite of
// income volatility, expense concentration, budget compliance and emergency
// fund coverage (target is three months of expenses).
func AnalyzeRisk(entries []ledger.Entry, overBudgetCount int, summary *metrics.FinancialSummary) *RiskAnalysis {
	totalExpenses := summary.MonthlyExpenses
	balance := summary.TotalBalance

	byCategory := make(map[string]float64)
	for _, e := range entries {
		if e.Type == ledger.TypeExpense {
			byCategory[e.Category] += math.Abs(e.Amount)
		}
	}

	concentration := 0.0
	if len(byCategory) > 0 && totalExpenses > 0 {
		maxExpense := 0.0
		for _, v := range byCategory {
			if v > maxExpense {
				maxExpense = v
			}
		}
		concentration = maxExpense / totalExpenses * 100
	}

	compliance := math.Max(0, 100-float64(overBudgetCount)*20)

	emergencyTarget := totalExpenses * 3
	emergencyScore := 0.0
	if emergencyTarget > 0 {
		emergencyScore = math.Min(100, balance/emergencyTarget*100)
	}

	score := (100-incomeVolatility*100)*0.25 +
		(100-math.Min(100, concentration))*0.25 +
		compliance*0.25 +
		emergencyScore*0.25

	level := "Muy Alto"
	switch {
	case score >= 80:
		level = "Muy Bajo"
	case score >= 60:
		level = "Bajo"
	case score >= 40:
		level = "Medio"
	case score >= 20:
		level = "Alto"
	}

	recommendations := []string{}
	if emergencyScore < 50 {
		recommendations = append(recommendations, "Construye un fondo de emergencia de al menos 3 meses de gastos")
	}
	if concentration > 40 {
		recommendations = append(recommendations, "Diversifica tus gastos para reducir dependencia de una categoría")
	}
	if compliance < 70 {
		recommendations = append(recommendations, "Mejora el cumplimiento de tus presupuestos establecidos")
	}

	return &RiskAnalysis{
		OverallScore: round1(score),
		Level:        level,
		Factors: RiskFactors{
			IncomeVolatility:     round1(incomeVolatility * 100),
			ExpenseConcentration: round1(concentration),
			BudgetCompliance:     round1(compliance),
			EmergencyFund:        round1(emergencyScore),
		},
		Recommendations: recommendations,
	}
}

// SmartRecommendations turns spending patterns into up to five actionable
// suggestions.
func SmartRecommendations(entries []ledger.Entry, exceeded []ExceededBudget, summary *metrics.FinancialSummary) []Recommendation {
	recommendations := make([]Recommendation, 0, 5)
	id := 1

	byCategory := make(map[string]float64)
	for _, e := range entries {
		if e.Type == ledger.TypeExpense {
			byCategory[e.Category] += math.Abs(e.Amount)
		}
	}

	if name, amount, ok := topCategory(byCategory); ok {
		saving := amount * 0.20
		recommendations = append(recommendations, Recommendation{
			ID:               fmt.Sprintf("rec_%d", id),
			Type:             "savings",
			Title:            "Optimizar gastos en " + name,
			Description:      fmt.Sprintf("Reducir un 20%% el gasto en %s podría ahorrarte €%.2f/mes", name, saving),
			Impact:           "Alto",
			Effort:           "Medio",
			PotentialSavings: metrics.Round2(saving),
			Confidence:       0.75,
			Category:         name,
			Actionable:       true,
		})
		id++
	}

	for _, b := range exceeded {
		recommendations = append(recommendations, Recommendation{
			ID:          fmt.Sprintf("rec_%d", id),
			Type:        "alert",
			Title:       "Presupuesto excedido: " + b.Category,
			Description: fmt.Sprintf("Has excedido el presupuesto en €%.2f", b.ExceededBy),
			Impact:      "Alto",
			Effort:      "Bajo",
			Confidence:  1.0,
			Category:    b.Category,
			Actionable:  true,
		})
		id++
	}

	income := summary.MonthlyIncome
	expenses := summary.MonthlyExpenses
	if income > 0 {
		savingsRate := (income - expenses) / income * 100
		if savingsRate < 20 {
			recommendations = append(recommendations, Recommendation{
				ID:               fmt.Sprintf("rec_%d", id),
				Type:             "goal",
				Title:            "Aumentar tasa de ahorro",
				Description:      fmt.Sprintf("Tu tasa de ahorro es %.1f%%. Intenta alcanzar al menos 20%%", savingsRate),
				Impact:           "Alto",
				Effort:           "Alto",
				PotentialSavings: metrics.Round2(income*0.20 - (income - expenses)),
				Confidence:       0.80,
				Actionable:       true,
			})
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

// SpendingTrends compares the last two weeks of spending against the weeks
// before them.
func SpendingTrends(entries []ledger.Entry) *Trend {
	if len(entries) == 0 {
		return &Trend{Trend: "neutral", Message: "No hay suficientes datos"}
	}

	weekly := make(map[int]float64)
	for _, e := range entries {
		if e.Type == ledger.TypeExpense {
			year, week := e.Date.ISOWeek()
			weekly[year*100+week] += math.Abs(e.Amount)
		}
	}
	if len(weekly) < 2 {
		return &Trend{Trend: "neutral", Message: "Necesitas más historial"}
	}

	weeks := make([]int, 0, len(weekly))
	for w := range weekly {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	recentAvg := (weekly[weeks[len(weeks)-1]] + weekly[weeks[len(weeks)-2]]) / 2
	olderTotal := 0.0
	for _, w := range weeks[:len(weeks)-2] {
		olderTotal += weekly[w]
	}
	olderAvg := olderTotal / math.Max(float64(len(weeks)-2), 1)

	switch {
	case olderAvg > 0 && recentAvg > olderAvg*1.2:
		pct := (recentAvg/olderAvg - 1) * 100
		return &Trend{
			Trend:      "increasing",
			Message:    fmt.Sprintf("Tus gastos han aumentado un %.1f%% recientemente", pct),
			Percentage: pct,
		}
	case olderAvg > 0 && recentAvg < olderAvg*0.8:
		pct := (1 - recentAvg/olderAvg) * 100
		return &Trend{
			Trend:      "decreasing",
			Message:    fmt.Sprintf("¡Bien! Has reducido tus gastos un %.1f%%", pct),
			Percentage: pct,
		}
	default:
		return &Trend{Trend: "stable", Message: "Tus gastos se mantienen estables"}
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
