package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerpilot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careerpilot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "careerpilot",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// AI metering metrics
	aiGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerpilot",
			Subsystem: "ai",
			Name:      "generations_total",
			Help:      "Total number of AI generation attempts",
		},
		[]string{"category", "outcome"},
	)

	aiGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careerpilot",
			Subsystem: "ai",
			Name:      "generation_duration_seconds",
			Help:      "Duration of AI provider calls in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"category"},
	)

	aiUsageRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerpilot",
			Subsystem: "ai",
			Name:      "usage_recorded_total",
			Help:      "Total AI consumptions recorded against monthly quotas",
		},
		[]string{"category"},
	)

	entitlementDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerpilot",
			Subsystem: "entitlement",
			Name:      "denials_total",
			Help:      "Total entitlement gate denials",
		},
		[]string{"category", "reason"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAIGeneration records an AI generation attempt outcome
func RecordAIGeneration(category, outcome string, duration time.Duration) {
	aiGenerationsTotal.WithLabelValues(category, outcome).Inc()
	aiGenerationDuration.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordAIUsage records one consumption counted against a monthly quota
func RecordAIUsage(category string) {
	aiUsageRecordedTotal.WithLabelValues(category).Inc()
}

// RecordEntitlementDenial records an entitlement gate denial
func RecordEntitlementDenial(category, reason string) {
	entitlementDenialsTotal.WithLabelValues(category, reason).Inc()
}
