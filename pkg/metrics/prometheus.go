// Package metrics exposes the service's Prometheus instrumentation.
//
// A package-private registry keeps the metric surface under our control;
// handlers serve it via GetRegistry. Recording helpers are package-level
// functions so call sites stay one line.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var registry = prometheus.NewRegistry()

var (
	guessesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kollega_guesses_total",
		Help: "Guesses evaluated, labeled by whether they hit the target.",
	}, []string{"outcome"})

	gamesFinishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kollega_games_finished_total",
		Help: "Games reaching a terminal state, labeled won or lost.",
	}, []string{"result"})

	submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kollega_leaderboard_submissions_total",
		Help: "Leaderboard submissions, labeled by merge outcome.",
	}, []string{"outcome"})

	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kollega_active_sessions",
		Help: "Live game sessions held in memory.",
	})

	catalogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kollega_catalog_employees",
		Help: "Employees in the current day's catalog snapshot.",
	})

	catalogRefreshSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kollega_catalog_refresh_duration_ms",
		Help:    "Latency of catalog provider fetches in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	storeMergeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kollega_store_merge_duration_ms",
		Help:    "Latency of leaderboard submit merges in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
	})

	storeQueryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kollega_store_query_duration_ms",
		Help:    "Latency of leaderboard reads in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
	})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kollega_http_requests_total",
		Help: "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kollega_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(0.5, 4, 8),
	}, []string{"endpoint", "method", "status"})

	errorsByComponent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kollega_errors_total",
		Help: "Errors by component and type.",
	}, []string{"component", "type"})

	systemMemoryBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kollega_system_memory_bytes",
		Help: "Heap bytes currently allocated.",
	})

	systemGoroutines = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kollega_system_goroutines",
		Help: "Goroutines currently running.",
	})

	systemGCPause = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kollega_system_gc_pause_ms",
		Help:    "Average GC pause time in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	registry.MustRegister(
		guessesTotal,
		gamesFinishedTotal,
		submissionsTotal,
		activeSessions,
		catalogSize,
		catalogRefreshSeconds,
		storeMergeLatency,
		storeQueryLatency,
		httpRequestsTotal,
		httpRequestDuration,
		errorsByComponent,
		systemMemoryBytes,
		systemGoroutines,
		systemGCPause,
	)
}

// Game metrics.

func RecordGuess(correct bool) {
	outcome := "miss"
	if correct {
		outcome = "hit"
	}
	guessesTotal.WithLabelValues(outcome).Inc()
}

func RecordGameWon()  { gamesFinishedTotal.WithLabelValues("won").Inc() }
func RecordGameLost() { gamesFinishedTotal.WithLabelValues("lost").Inc() }

// Leaderboard metrics.

func RecordSubmission(improved bool) {
	outcome := "kept_existing"
	if improved {
		outcome = "new_best"
	}
	submissionsTotal.WithLabelValues(outcome).Inc()
}

func UpdateActiveSessions(count int) {
	activeSessions.Set(float64(count))
}

// Catalog metrics.

func UpdateCatalogSize(count int) {
	catalogSize.Set(float64(count))
}

func RecordCatalogRefresh(latencyMs float64) {
	catalogRefreshSeconds.Observe(latencyMs)
}

// Store metrics.

func RecordStoreMergeLatency(latencyMs float64) {
	storeMergeLatency.Observe(latencyMs)
}

func RecordStoreQueryLatency(latencyMs float64) {
	storeQueryLatency.Observe(latencyMs)
}

// HTTP metrics.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	httpRequestsTotal.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Error metrics.

func RecordErrorByComponent(component, errorType string) {
	errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// System metrics.

func UpdateSystemMemoryUsage(bytes uint64) {
	systemMemoryBytes.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	systemGoroutines.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	systemGCPause.Observe(pauseMs)
}

// GetRegistry returns the registry handlers should serve.
func GetRegistry() *prometheus.Registry {
	return registry
}
