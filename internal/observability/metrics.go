package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dyntrade_catalog_fallbacks_total",
		Help: "Times the token catalog served the built-in fallback list",
	})

	metricsFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dyntrade_metrics_fetch_failures_total",
		Help: "Per-token metrics fetches that failed and excluded the token",
	})

	tokensAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dyntrade_tokens_analyzed_total",
		Help: "Tokens run through the profitability classification",
	})

	tokensPassed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dyntrade_tokens_passed_total",
		Help: "Tokens that passed their profitability policy",
	})

	tradesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dyntrade_trades_total",
		Help: "Swap attempts by outcome",
	}, []string{"outcome"})
)

func IncCatalogFallback()     { catalogFallbacks.Inc() }
func IncMetricsFetchFailure() { metricsFetchFailures.Inc() }
func IncTokenAnalyzed()       { tokensAnalyzed.Inc() }
func IncTokenPassed()         { tokensPassed.Inc() }
func IncTrade(outcome string) { tradesExecuted.WithLabelValues(outcome).Inc() }
