package insights

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/metrics"
)

// Generator produces raw text for a prompt. Implemented by the Gemini
// client; nil means no LLM is configured.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine layers LLM-generated insights over the deterministic heuristics.
// Every LLM failure, including unparseable output, degrades to
// FallbackInsights rather than surfacing an error.
type Engine struct {
	gen Generator
}

func NewEngine(gen Generator) *Engine {
	return &Engine{gen: gen}
}

// Insights returns exactly the advisory items for the given financial
// picture, LLM-backed when possible.
func (e *Engine) Insights(ctx context.Context, summary *metrics.FinancialSummary, exceeded []ExceededBudget, categoryExpenses map[string]float64, recent []ledger.Entry) []Insight {
	if e.gen == nil {
		return FallbackInsights(summary, exceeded, categoryExpenses)
	}

	raw, err := e.gen.Generate(ctx, advisoryPrompt(summary, exceeded, categoryExpenses, recent))
	if err != nil {
		log.Printf("insights: generation failed, using fallback: %v", err)
		return FallbackInsights(summary, exceeded, categoryExpenses)
	}

	var parsed struct {
		Insights []Insight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil || len(parsed.Insights) == 0 {
		log.Printf("insights: unparseable model output, using fallback")
		return FallbackInsights(summary, exceeded, categoryExpenses)
	}
	return parsed.Insights
}

var errNoGenerator = errors.New("no generator configured")

// PredictTransactions asks the LLM for likely future transactions. Unlike
// Insights there is no heuristic substitute, so errors propagate.
func (e *Engine) PredictTransactions(ctx context.Context, entries []ledger.Entry) ([]PredictedTransaction, error) {
	if e.gen == nil {
		return nil, errNoGenerator
	}

	raw, err := e.gen.Generate(ctx, predictionPrompt(entries))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Predictions []PredictedTransaction `json:"predictions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, errors.New("could not parse model response as JSON")
	}
	return parsed.Predictions, nil
}

// extractJSON strips markdown code fences and surrounding prose that models
// emit despite being told not to.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
	} else if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+len("```"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
	}
	text = strings.TrimSpace(text)

	// Fall back to the outermost braces when prose surrounds the object.
	if !strings.HasPrefix(text, "{") {
		if i := strings.Index(text, "{"); i >= 0 {
			if j := strings.LastIndex(text, "}"); j > i {
				text = text[i : j+1]
			}
		}
	}
	return text
}
