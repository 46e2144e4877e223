package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the prediction service

var (
	// API Call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_api_calls_total",
			Help: "Total number of football-data.org API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soccer_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_api_retries_total",
			Help: "Total number of retried API calls",
		},
		[]string{"endpoint"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"kind"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"kind"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soccer_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// Prediction metrics
	PredictionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_prediction_runs_total",
			Help: "Total number of competition prediction runs",
		},
		[]string{"competition", "status"},
	)

	PredictionRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "soccer_prediction_run_duration_seconds",
			Help:    "Duration of competition prediction runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"competition"},
	)

	PredictionsGenerated = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "soccer_predictions_generated",
			Help: "Number of predictions in the latest run per competition",
		},
		[]string{"competition"},
	)

	HistoryMatches = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "soccer_history_matches",
			Help: "Number of finished matches feeding the latest run per competition",
		},
		[]string{"competition"},
	)

	PredictedOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_predicted_outcomes_total",
			Help: "Total number of predicted outcomes by type",
		},
		[]string{"outcome"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soccer_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soccer_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "soccer_last_successful_run_timestamp",
			Help: "Timestamp of last successful prediction run",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordAPIRetry records a retried API call
func RecordAPIRetry(endpoint string) {
	APIRetriesTotal.WithLabelValues(endpoint).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(kind string) {
	CacheHitsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(kind string) {
	CacheMissesTotal.WithLabelValues(kind).Inc()
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration float64) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordPredictionRun records a competition prediction run
func RecordPredictionRun(competition, status string, duration float64) {
	PredictionRunsTotal.WithLabelValues(competition, status).Inc()
	PredictionRunDuration.WithLabelValues(competition).Observe(duration)

	if status == "success" {
		LastSuccessfulRun.SetToCurrentTime()
	}
}

// UpdateRunStats updates the per-competition size gauges
func UpdateRunStats(competition string, history, predictions int) {
	HistoryMatches.WithLabelValues(competition).Set(float64(history))
	PredictionsGenerated.WithLabelValues(competition).Set(float64(predictions))
}

// RecordOutcome records a predicted outcome
func RecordOutcome(outcome string) {
	PredictedOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
