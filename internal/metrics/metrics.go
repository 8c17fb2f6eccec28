// internal/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecommerce_ai"

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

type Metrics struct {
	GenerationsTotal      *prometheus.CounterVec
	GenerationTokensTotal *prometheus.CounterVec
	GenerationCostTotal   *prometheus.CounterVec
	GenerationDuration    *prometheus.HistogramVec
	ImageFallbacksTotal   prometheus.Counter
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	VersionConflictsTotal prometheus.Counter
}

// Get registers the collectors with the default registry on first use.
func Get() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			GenerationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "generations_total",
					Help:      "Provider generation calls by kind, model and outcome",
				},
				[]string{"kind", "model", "outcome"},
			),
			GenerationTokensTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "generation_tokens_total",
					Help:      "Tokens reported by the provider",
				},
				[]string{"kind", "model", "direction"}, // prompt or completion
			),
			GenerationCostTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "generation_cost_usd_total",
					Help:      "Estimated provider cost in USD",
				},
				[]string{"model"},
			),
			GenerationDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "generation_duration_seconds",
					Help:      "Provider call latency",
					Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
				},
				[]string{"kind", "model"},
			),
			ImageFallbacksTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "image_fallbacks_total",
					Help:      "Descriptions that fell back to text-only after the vision call failed",
				},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "http_requests_total",
					Help:      "HTTP requests by method, route and status",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "http_request_duration_seconds",
					Help:      "HTTP request latency",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			VersionConflictsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "version_conflicts_total",
					Help:      "Content updates rejected by the row_version check",
				},
			),
		}
	})
	return globalMetrics
}
