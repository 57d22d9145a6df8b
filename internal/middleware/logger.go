package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rajansharma08/lyftr-webhook-api/internal/metrics"
)

// statusRecorder captures the status code written by the wrapped handler so
// it can be logged and counted after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every HTTP request with a generated request id, method,
// path, status and latency, and feeds the same observation into the metrics
// collector.
func RequestLogger(logger *slog.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			latencyMS := float64(time.Since(start).Microseconds()) / 1000.0

			collector.RecordRequest(r.URL.Path, rec.status, latencyMS)

			logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"latency_ms", latencyMS,
			)
		})
	}
}
