package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector_EmptyExport(t *testing.T) {
	c := NewCollector()

	out := c.Export()

	assert.Contains(t, out, "# TYPE http_requests_total counter")
	assert.Contains(t, out, "# TYPE webhook_requests_total counter")
	assert.Contains(t, out, "# TYPE request_latency_ms histogram")
	assert.Contains(t, out, `request_latency_ms_bucket{le="+Inf"} 0`)
	assert.Contains(t, out, "request_latency_ms_count 0")
}

func TestCollector_RequestCounters(t *testing.T) {
	c := NewCollector()

	c.RecordRequest("/webhook", 200, 10)
	c.RecordRequest("/webhook", 200, 20)
	c.RecordRequest("/webhook", 401, 5)
	c.RecordRequest("/messages", 200, 8)

	out := c.Export()

	assert.Contains(t, out, `http_requests_total{path="/webhook",status="200"} 2`)
	assert.Contains(t, out, `http_requests_total{path="/webhook",status="401"} 1`)
	assert.Contains(t, out, `http_requests_total{path="/messages",status="200"} 1`)
}

func TestCollector_IngestCounters(t *testing.T) {
	c := NewCollector()

	c.RecordIngest(ResultCreated)
	c.RecordIngest(ResultCreated)
	c.RecordIngest(ResultDuplicate)
	c.RecordIngest(ResultInvalidSignature)
	c.RecordIngest(ResultValidationError)

	out := c.Export()

	assert.Contains(t, out, `webhook_requests_total{result="created"} 2`)
	assert.Contains(t, out, `webhook_requests_total{result="duplicate"} 1`)
	assert.Contains(t, out, `webhook_requests_total{result="invalid_signature"} 1`)
	assert.Contains(t, out, `webhook_requests_total{result="validation_error"} 1`)
}

func TestCollector_HistogramBucketsAreCumulative(t *testing.T) {
	c := NewCollector()

	// One observation per band: <=100, <=500, <=1000, <=5000, and beyond.
	for _, ms := range []float64{50, 300, 700, 3000, 9000} {
		c.RecordRequest("/webhook", 200, ms)
	}

	out := c.Export()

	assert.Contains(t, out, `request_latency_ms_bucket{le="100"} 1`)
	assert.Contains(t, out, `request_latency_ms_bucket{le="500"} 2`)
	assert.Contains(t, out, `request_latency_ms_bucket{le="1000"} 3`)
	assert.Contains(t, out, `request_latency_ms_bucket{le="5000"} 4`)
	assert.Contains(t, out, `request_latency_ms_bucket{le="+Inf"} 5`)
	assert.Contains(t, out, "request_latency_ms_sum 13050")
	assert.Contains(t, out, "request_latency_ms_count 5")
}

func TestCollector_BoundaryLandsInBucket(t *testing.T) {
	c := NewCollector()

	c.RecordRequest("/webhook", 200, 100)

	out := c.Export()
	assert.Contains(t, out, `request_latency_ms_bucket{le="100"} 1`)
}

func TestCollector_ExportIsStable(t *testing.T) {
	c := NewCollector()

	c.RecordRequest("/b", 200, 1)
	c.RecordRequest("/a", 500, 1)
	c.RecordRequest("/a", 200, 1)

	first := c.Export()
	second := c.Export()
	assert.Equal(t, first, second)

	// Sorted label sets: /a lines precede /b lines.
	aIdx := strings.Index(first, `path="/a"`)
	bIdx := strings.Index(first, `path="/b"`)
	assert.Less(t, aIdx, bIdx)
}
