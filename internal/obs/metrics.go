package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	loginFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_failures_total",
			Help: "Failed login attempts.",
		},
		[]string{"role"},
	)

	refreshReplaysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_refresh_replays_total",
			Help: "Refresh tokens presented after they were already consumed.",
		},
	)
)

// Init registers collectors in the default registry.
func Init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, loginFailuresTotal, refreshReplaysTotal)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncLoginFailure counts one failed login attempt for the given role.
func IncLoginFailure(role string) {
	loginFailuresTotal.WithLabelValues(role).Inc()
}

// IncRefreshReplay counts one replayed refresh token.
func IncRefreshReplay() {
	refreshReplaysTotal.Inc()
}

// Instrument wraps a handler with request count and latency metrics.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.code)
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
