package ai_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"biztrack/internal/ai"
	"biztrack/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Hits the live API; only runs when OPENAI_API_KEY is set.
func TestAdvisor_Analyze_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	snapshot := core.AnalysisSnapshot{
		Currency: "BDT",
		Products: []core.ProductPerformance{
			{Name: "Desk Lamp", Stock: 3, UnitsSold: 12, Revenue: dec("600"), Profit: dec("240")},
			{Name: "Phone Case", Stock: 40, UnitsSold: 1, Revenue: dec("15"), Profit: dec("5")},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	advisor := ai.NewAdvisor(apiKey)
	result, err := advisor.Analyze(ctx, snapshot)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.GeneralAnalysis == "" {
		t.Error("expected a non-empty general analysis")
	}
	if len(result.TopFocusProducts) == 0 {
		t.Error("expected at least one focus product")
	}
}
