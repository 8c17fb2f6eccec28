// internal/metrics/recorder.go
package metrics

import (
	"time"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// ObserveGeneration records one gateway call. model labels failed calls,
// successful ones use meta.ModelUsed.
func (m *Metrics) ObserveGeneration(kind, model string, meta *models.GenerationMetadata, err error) {
	if model == "" {
		model = "unknown"
	}
	if err != nil || meta == nil {
		m.GenerationsTotal.WithLabelValues(kind, model, OutcomeError).Inc()
		return
	}

	if meta.ModelUsed != "" {
		model = meta.ModelUsed
	}
	m.GenerationsTotal.WithLabelValues(kind, model, OutcomeSuccess).Inc()
	m.GenerationTokensTotal.WithLabelValues(kind, model, "prompt").Add(float64(meta.PromptTokens))
	m.GenerationTokensTotal.WithLabelValues(kind, model, "completion").Add(float64(meta.CompletionTokens))
	m.GenerationCostTotal.WithLabelValues(model).Add(meta.EstimatedCost)
	m.GenerationDuration.WithLabelValues(kind, model).Observe((time.Duration(meta.GenerationTime) * time.Millisecond).Seconds())
	if meta.ImageFallback {
		m.ImageFallbacksTotal.Inc()
	}
}
