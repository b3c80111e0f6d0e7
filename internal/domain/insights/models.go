package insights

// Insight is one advisory item shown on the dashboard. Confidence is a
// categorical label, not a probability.
type Insight struct {
	Type       string   `json:"type"` // "prediction", "warning" or "tip"
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Confidence string   `json:"confidence"` // "Alta", "Media" or "Crítico"
	Icon       string   `json:"icon"`
	Color      string   `json:"color"`
	Amount     *float64 `json:"amount,omitempty"`
	Category   string   `json:"category,omitempty"`
}

// ExceededBudget describes a budget currently past its limit, as input to
// insight generation.
type ExceededBudget struct {
	Category   string  `json:"category"`
	Spent      float64 `json:"amount"`
	Budget     float64 `json:"budget"`
	ExceededBy float64 `json:"exceeded_by"`
}

// Prediction is a per-category spending forecast.
type Prediction struct {
	Type       string   `json:"type"`
	Current    float64  `json:"current"`
	Predicted  float64  `json:"predicted"`
	Confidence float64  `json:"confidence"`
	Timeframe  string   `json:"timeframe"`
	Factors    []string `json:"factors"`
}

type ForecastScenario struct {
	Balance     float64 `json:"balance"`
	Probability float64 `json:"probability"`
}

type ForecastScenarios struct {
	Optimistic   ForecastScenario `json:"optimistic"`
	Realistic    ForecastScenario `json:"realistic"`
	Conservative ForecastScenario `json:"conservative"`
}

type BalanceForecast struct {
	Timeframe  string            `json:"timeframe"`
	Scenarios  ForecastScenarios `json:"scenarios"`
	KeyFactors []string          `json:"keyFactors"`
	Confidence float64           `json:"confidence"`
}

type RiskFactors struct {
	IncomeVolatility     float64 `json:"incomeVolatility"`
	ExpenseConcentration float64 `json:"expenseConcentration"`
	BudgetCompliance     float64 `json:"budgetCompliance"`
	EmergencyFund        float64 `json:"emergencyFund"`
}

type RiskAnalysis struct {
	OverallScore    float64     `json:"overallScore"`
	Level           string      `json:"level"`
	Factors         RiskFactors `json:"factors"`
	Recommendations []string    `json:"recommendations"`
}

// Recommendation is an actionable suggestion derived from spending patterns.
type Recommendation struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Impact           string  `json:"impact"`
	Effort           string  `json:"effort"`
	PotentialSavings float64 `json:"potentialSavings"`
	Confidence       float64 `json:"confidence"`
	Category         string  `json:"category,omitempty"`
	Actionable       bool    `json:"actionable"`
}

// Trend summarizes the recent direction of weekly spending.
type Trend struct {
	Trend      string  `json:"trend"`
	Message    string  `json:"message"`
	Percentage float64 `json:"percentage"`
}

// PredictedTransaction is one LLM-predicted future transaction.
type PredictedTransaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
}
