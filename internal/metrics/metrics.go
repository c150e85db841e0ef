package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camping",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "camping",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	aggregateUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camping",
			Subsystem: "reviews",
			Name:      "aggregate_updates_total",
			Help:      "Review aggregate mutations by operation.",
		},
		[]string{"op"},
	)

	gradeChanges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "camping",
			Subsystem: "grades",
			Name:      "changes_total",
			Help:      "Members whose grade changed during batch runs.",
		},
	)

	gradeRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "camping",
			Subsystem: "grades",
			Name:      "run_duration_seconds",
			Help:      "Duration of grade batch runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camping",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Ranking cache lookups by result.",
		},
		[]string{"cache", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		aggregateUpdates,
		gradeChanges,
		gradeRunDuration,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, path, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordAggregateUpdate op is one of add, update, remove.
func RecordAggregateUpdate(op string) {
	aggregateUpdates.WithLabelValues(op).Inc()
}

func RecordGradeRun(changed int, elapsed time.Duration) {
	gradeChanges.Add(float64(changed))
	gradeRunDuration.Observe(elapsed.Seconds())
}

func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}
