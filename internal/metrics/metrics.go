package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric name.
const Namespace = "labdex"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"scope", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Search aggregation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"scope"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_results",
			Help:      "Number of combined matches before paging",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 300},
		},
		[]string{"scope"},
	)
)

// Answer (language model) Prometheus metrics.
var (
	AnswerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "answer_requests_total",
			Help:      "Total number of language model requests",
		},
		[]string{"provider", "model", "status"},
	)

	AnswerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "answer_request_duration_seconds",
			Help:      "Language model request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	AnswerTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "answer_tokens_total",
			Help:      "Total language model tokens consumed",
		},
		[]string{"provider", "model", "type"}, // "prompt" / "completion"
	)

	AnswerFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "answer_fallbacks_total",
			Help:      "Answers degraded to the canned fallback",
		},
		[]string{"reason"},
	)
)

// AnswerBudgetTokensRemaining is the token budget left per provider and window.
var AnswerBudgetTokensRemaining = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "answer_budget_tokens_remaining",
		Help:      "Language model tokens left in the current budget window",
	},
	[]string{"provider", "period"},
)

// Analytics Prometheus metrics.
var (
	AnalyticsCalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analytics_calculations_total",
			Help:      "Project analytics calculations",
		},
		[]string{"status"}, // ok, missing, error, skipped
	)

	AnalyticsBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "analytics_batch_duration_seconds",
			Help:      "Duration of recalculate-all runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)
)

var (
	searchMetricsRegistered    bool
	answerMetricsRegistered    bool
	analyticsMetricsRegistered bool
)

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal, SearchDuration, SearchResults)
	searchMetricsRegistered = true
}

// RegisterAnswerMetrics registers language model metrics. Must be called once from main.
func RegisterAnswerMetrics() {
	if answerMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		AnswerRequestsTotal, AnswerRequestDuration, AnswerTokensTotal,
		AnswerFallbacksTotal, AnswerBudgetTokensRemaining,
	)
	answerMetricsRegistered = true
}

// RegisterAnalyticsMetrics registers analytics metrics. Must be called once from main.
func RegisterAnalyticsMetrics() {
	if analyticsMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalyticsCalculationsTotal, AnalyticsBatchDuration)
	analyticsMetricsRegistered = true
}

// RegisterAll registers every metric family.
func RegisterAll() {
	RegisterSearchMetrics()
	RegisterAnswerMetrics()
	RegisterAnalyticsMetrics()
	RegisterHTTPMetrics()
}
