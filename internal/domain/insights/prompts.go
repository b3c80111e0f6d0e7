package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

func advisoryPrompt(summary *metrics.FinancialSummary, exceeded []ExceededBudget, categoryExpenses map[string]float64, recent []ledger.Entry) string {
	savingsRate := 0.0
	if summary.MonthlyIncome > 0 {
		savingsRate = (summary.MonthlyIncome - summary.MonthlyExpenses) / summary.MonthlyIncome * 100
	}

	categoriesJSON, _ := json.MarshalIndent(categoryExpenses, "", "  ")
	exceededJSON, _ := json.MarshalIndent(exceeded, "", "  ")
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentJSON, _ := json.MarshalIndent(recent, "", "  ")

	var b strings.Builder
	b.WriteString("Eres un asesor financiero experto. Analiza la situación financiera del usuario y genera insights útiles en ESPAÑOL.\n\n")
	b.WriteString("CONTEXTO FINANCIERO:\n")
	fmt.Fprintf(&b, "- Balance total: €%.2f\n", summary.TotalBalance)
	fmt.Fprintf(&b, "- Ingresos mensuales: €%.2f\n", summary.MonthlyIncome)
	fmt.Fprintf(&b, "- Gastos mensuales: €%.2f\n", summary.MonthlyExpenses)
	fmt.Fprintf(&b, "- Tasa de ahorro: %.1f%%\n\n", savingsRate)
	fmt.Fprintf(&b, "GASTOS POR CATEGORÍA:\n%s\n\n", categoriesJSON)
	fmt.Fprintf(&b, "PRESUPUESTOS EXCEDIDOS:\n%s\n\n", exceededJSON)
	fmt.Fprintf(&b, "TRANSACCIONES RECIENTES (últimas 10):\n%s\n\n", recentJSON)
	b.WriteString(`INSTRUCCIONES:
Genera exactamente 3 insights financieros relevantes. DEBE SER JSON VÁLIDO SIN MARKDOWN.

Tipos de insights:
1. "prediction" - Predicción de gasto basada en patrones
2. "warning" - Alerta sobre presupuestos o gastos excesivos
3. "tip" - Recomendación de ahorro u optimización

Niveles de confianza:
- "Alta" - Basado en datos claros y patrones consistentes
- "Media" - Estimación razonable con algo de incertidumbre
- "Crítico" - Alerta urgente que requiere atención inmediata

FORMATO DE RESPUESTA (JSON puro, sin explicaciones):
{
  "insights": [
    {
      "type": "prediction|warning|tip",
      "title": "Título corto en español",
      "message": "Mensaje detallado explicando el insight",
      "confidence": "Alta|Media|Crítico",
      "icon": "brain|alert-triangle|lightbulb",
      "color": "primary|destructive|secondary",
      "amount": 0,
      "category": "categoría opcional si aplica"
    }
  ]
}

GENERA INSIGHTS ESPECÍFICOS Y ÚTILES BASADOS EN LOS DATOS REALES DEL USUARIO.`)
	return b.String()
}

func predictionPrompt(entries []ledger.Entry) string {
	entriesJSON, _ := json.Marshal(entries)

	var b strings.Builder
	b.WriteString("You are an expert financial assistant AI. Analyze the user's past transactions and predict possible future transactions.\n\n")
	b.WriteString("IMPORTANT: Return ONLY valid JSON, no markdown, no explanations, no code blocks.\n\n")
	b.WriteString(`Expected JSON structure:
{
  "predictions": [
    {
      "description": "string",
      "amount": 0,
      "date": "YYYY-MM-DD",
      "category": "string",
      "confidence": 0.5
    }
  ]
}

`)
	fmt.Fprintf(&b, "User transactions: %s\n", entriesJSON)
	return b.String()
}
