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
			Namespace: "speedaudit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "speedaudit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "speedaudit",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Audit metrics
	auditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "speedaudit",
			Subsystem: "audit",
			Name:      "runs_total",
			Help:      "Total number of audit runs",
		},
		[]string{"status"},
	)

	auditDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "speedaudit",
			Subsystem: "audit",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of one audit run in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	pageScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "speedaudit",
			Subsystem: "audit",
			Name:      "page_score",
			Help:      "Most recent performance score per target",
		},
		[]string{"target"},
	)

	pageLoadTime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "speedaudit",
			Subsystem: "audit",
			Name:      "page_load_time_ms",
			Help:      "Most recent full page load time per target in milliseconds",
		},
		[]string{"target"},
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

// RecordAudit records one completed or failed audit run
func RecordAudit(status string, duration time.Duration) {
	auditsTotal.WithLabelValues(status).Inc()
	auditDuration.Observe(duration.Seconds())
}

// SetPageScore records the most recent score for a target
func SetPageScore(target string, score int) {
	pageScore.WithLabelValues(target).Set(float64(score))
}

// SetPageLoadTime records the most recent load time for a target
func SetPageLoadTime(target string, loadTimeMs int64) {
	pageLoadTime.WithLabelValues(target).Set(float64(loadTimeMs))
}
