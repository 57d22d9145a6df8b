package handler

import (
	"net/http"

	"github.com/rajansharma08/lyftr-webhook-api/internal/metrics"
)

// MetricsHandler exposes the collector in Prometheus text format.
type MetricsHandler struct {
	collector *metrics.Collector
}

// NewMetricsHandler returns a handler over the given collector.
func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

// Export godoc
// @Summary     Prometheus metrics
// @Description Request counters, webhook outcome counters and the latency histogram in text exposition format.
// @Tags        metrics
// @Produce     plain
// @Success     200 {string} string
// @Router      /metrics [get]
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.collector.Export()))
}
