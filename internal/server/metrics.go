package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume_builder",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_builder",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resume_builder",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resume_builder",
			Name:      "sessions_active",
			Help:      "Editing sessions held in memory.",
		},
	)

	aiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_builder",
			Name:      "ai_calls_total",
			Help:      "AI wrapper calls by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestDuration, requestTotal, requestsInFlight, sessionsActive, aiCallsTotal)
	})
}

// metricsHandler serves the default registry
func metricsHandler() http.Handler {
	registerMetrics()
	return promhttp.Handler()
}

// observeAICall counts a finished wrapper call. It is the assistant observer.
func observeAICall(kind assistant.Kind, err error) {
	outcome := "success"
	if err != nil {
		outcome = outcomeFor(HTTPStatus(err))
	}
	aiCallsTotal.WithLabelValues(string(kind), outcome).Inc()
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusBadGateway:
		return "upstream_error"
	default:
		return "error"
	}
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withMetrics records request count and latency labelled by route pattern
func (s *Server) withMetrics(next http.Handler) http.Handler {
	registerMetrics()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// ServeMux records the matched pattern on the request; raw paths
		// would give every session id its own series.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"path":   path,
			"status": strconv.Itoa(rec.status),
		}
		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	})
}
