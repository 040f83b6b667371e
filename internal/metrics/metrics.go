// Package metrics exposes Prometheus collectors for the upload service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keja_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		},
		[]string{"route", "method", "code"},
	)
	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keja_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "keja_upload_size_bytes",
			Help:    "Size of stored uploads.",
			Buckets: prometheus.ExponentialBuckets(1024, 8, 8),
		},
	)
	filesServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keja_files_served_total",
			Help: "Streamed file responses by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
	filesDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keja_files_deleted_total",
			Help: "Stored objects removed.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDurationSeconds)
	prometheus.MustRegister(uploadBytes)
	prometheus.MustRegister(filesServedTotal)
	prometheus.MustRegister(filesDeletedTotal)
	prometheus.MustRegister(prometheus.NewBuildInfoCollector())
}

// ObserveUpload records a stored upload of n bytes.
func ObserveUpload(n int64) {
	uploadBytes.Observe(float64(n))
}

// FileServed records the outcome ("ok", "not_found", "rejected", "canceled", "error") of a streaming endpoint.
func FileServed(endpoint, outcome string) {
	filesServedTotal.WithLabelValues(endpoint, outcome).Inc()
}

// FileDeleted records a successful removal.
func FileDeleted() {
	filesDeletedTotal.Inc()
}

// Instrument records request counts and latency labelled with the chi route pattern,
// so path parameters such as file names do not explode label cardinality.
// Requests that end in a panic, such as an aborted download, are recorded too.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			httpRequestDurationSeconds.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}()
		next.ServeHTTP(ww, r)
	})
}
