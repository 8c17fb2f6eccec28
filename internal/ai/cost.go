// internal/ai/cost.go
package ai

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ModelGPT4o      = "gpt-4o"
	ModelGPT4Turbo  = "gpt-4-turbo"
	ModelGPT35Turbo = "gpt-3.5-turbo"
)

type modelRate struct {
	prompt     decimal.Decimal
	completion decimal.Decimal
}

// USD per token.
var modelRates = map[string]modelRate{
	ModelGPT4o: {
		prompt:     decimal.RequireFromString("0.000005"),
		completion: decimal.RequireFromString("0.000015"),
	},
	ModelGPT4Turbo: {
		prompt:     decimal.RequireFromString("0.00001"),
		completion: decimal.RequireFromString("0.00003"),
	},
	ModelGPT35Turbo: {
		prompt:     decimal.RequireFromString("0.0000015"),
		completion: decimal.RequireFromString("0.000002"),
	},
}

func rateFor(model string) modelRate {
	if r, ok := modelRates[model]; ok {
		return r
	}

	// Dated snapshots like gpt-4o-2024-08-06 bill as their family.
	best := ""
	for name := range modelRates {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return modelRates[best]
	}
	return modelRates[ModelGPT35Turbo]
}

// EstimateCost prices a call from the provider-reported token counts.
func EstimateCost(model string, promptTokens, completionTokens int64) decimal.Decimal {
	r := rateFor(model)
	return r.prompt.Mul(decimal.NewFromInt(promptTokens)).
		Add(r.completion.Mul(decimal.NewFromInt(completionTokens)))
}
