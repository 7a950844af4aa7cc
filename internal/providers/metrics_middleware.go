package providers

import (
	"github.com/klauspost/compress/gzhttp"
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware records status and latency per API path. Query strings
// are dropped, so every guild's ranking lands on the /ranking series.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.IncRequestsTotal(r.URL.Path, sw.status)
		metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
	})
}

// CompressionMiddleware gzips API responses for clients that accept it. Long
// rankings compress well; small bodies such as a one-guild list pass through.
func CompressionMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
