// Package observability provides Prometheus instrumentation for the API and
// the risk pipeline.
package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path pattern, and
	// status bucket.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "injuryrisk",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "injuryrisk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// EvaluationsTotal counts risk evaluations by resulting level.
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "injuryrisk",
			Name:      "evaluations_total",
			Help:      "Total risk evaluations by resulting risk level.",
		},
		[]string{"risk_level"},
	)

	// EvaluationDuration observes end-to-end evaluation latency including
	// feature assembly.
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "injuryrisk",
			Name:      "evaluation_duration_seconds",
			Help:      "Risk evaluation duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// SafetyRuleTriggersTotal counts safety rule activations by rule id.
	SafetyRuleTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "injuryrisk",
			Name:      "safety_rule_triggers_total",
			Help:      "Total safety rule activations by rule id.",
		},
		[]string{"rule_id"},
	)

	// ImportedWorkoutsTotal counts workouts created through imports.
	ImportedWorkoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "injuryrisk",
		Name:      "imported_workouts_total",
		Help:      "Total workouts created through device imports.",
	})

	// ImportedMetricDaysTotal counts daily-metric days created or updated
	// through imports.
	ImportedMetricDaysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "injuryrisk",
		Name:      "imported_metric_days_total",
		Help:      "Total daily-metric days created or updated through device imports.",
	})

	// PredictionCacheHitsTotal counts prediction cache lookups by result.
	PredictionCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "injuryrisk",
			Name:      "prediction_cache_lookups_total",
			Help:      "Total prediction cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		EvaluationsTotal,
		EvaluationDuration,
		SafetyRuleTriggersTotal,
		ImportedWorkoutsTotal,
		ImportedMetricDaysTotal,
		PredictionCacheHitsTotal,
	)
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath() // route pattern, not actual path
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func statusBucket(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
