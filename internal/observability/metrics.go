package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the data pipeline.
type Metrics struct {
	ProviderRequests    *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderDuration    *prometheus.HistogramVec // labels: provider
	ReconcileFallbacks  prometheus.Counter
	ForecastSynthesized prometheus.Counter
	AlertsDerived       *prometheus.CounterVec // labels: kind
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_weather",
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "space_weather",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of upstream provider requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"provider"}),
		ReconcileFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "space_weather",
			Name:      "reconcile_fallbacks_total",
			Help:      "Reconciliations where no provider contributed a reading.",
		}),
		ForecastSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "space_weather",
			Name:      "forecast_synthesized_total",
			Help:      "Forecast requests served by local synthesis instead of the parsed text feed.",
		}),
		AlertsDerived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "space_weather",
			Name:      "alerts_derived_total",
			Help:      "Alert records derived from the reconciled index, by kind.",
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.ReconcileFallbacks,
		m.ForecastSynthesized,
		m.AlertsDerived,
	)
	return m
}

// NewMetricsUnregistered builds the collectors without touching the default
// registry, so parallel tests can create them freely.
func NewMetricsUnregistered() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_requests_total",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "provider_request_duration_seconds",
		}, []string{"provider"}),
		ReconcileFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reconcile_fallbacks_total",
		}),
		ForecastSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forecast_synthesized_total",
		}),
		AlertsDerived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_derived_total",
		}, []string{"kind"}),
	}
}
