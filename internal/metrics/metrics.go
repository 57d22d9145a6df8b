// Package metrics collects request counters, ingestion outcome counters and
// a latency histogram, and renders them in Prometheus text exposition format
// at /metrics.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// IngestResult is the outcome label recorded for each webhook request.
type IngestResult string

const (
	ResultCreated          IngestResult = "created"
	ResultDuplicate        IngestResult = "duplicate"
	ResultInvalidSignature IngestResult = "invalid_signature"
	ResultValidationError  IngestResult = "validation_error"
)

// latencyBuckets are the fixed histogram boundaries in milliseconds. The
// implicit final bucket is +Inf.
var latencyBuckets = []float64{100, 500, 1000, 5000}

type requestKey struct {
	path   string
	status int
}

// Collector is a thread-safe in-process metrics registry.
type Collector struct {
	mu sync.Mutex

	httpRequests  map[requestKey]int64
	ingestResults map[IngestResult]int64

	// bucketCounts[i] counts observations <= latencyBuckets[i]; infCount
	// counts all observations. Counts are cumulative by construction: an
	// observation increments every bucket whose boundary it fits under.
	bucketCounts []int64
	infCount     int64
	latencySum   float64
	latencyCount int64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		httpRequests:  make(map[requestKey]int64),
		ingestResults: make(map[IngestResult]int64),
		bucketCounts:  make([]int64, len(latencyBuckets)),
	}
}

// RecordRequest counts one served HTTP request and adds its latency to the
// histogram. Called from the request middleware for every request.
func (c *Collector) RecordRequest(path string, status int, latencyMS float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.httpRequests[requestKey{path: path, status: status}]++

	for i, bound := range latencyBuckets {
		if latencyMS <= bound {
			c.bucketCounts[i]++
		}
	}
	c.infCount++
	c.latencySum += latencyMS
	c.latencyCount++
}

// RecordIngest counts one webhook processing outcome.
func (c *Collector) RecordIngest(result IngestResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ingestResults[result]++
}

// Export renders all metrics in Prometheus text format. Label sets are
// sorted so output is stable between calls.
func (c *Collector) Export() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder

	b.WriteString("# HELP http_requests_total Total HTTP requests\n")
	b.WriteString("# TYPE http_requests_total counter\n")
	reqKeys := make([]requestKey, 0, len(c.httpRequests))
	for k := range c.httpRequests {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		if reqKeys[i].path != reqKeys[j].path {
			return reqKeys[i].path < reqKeys[j].path
		}
		return reqKeys[i].status < reqKeys[j].status
	})
	for _, k := range reqKeys {
		fmt.Fprintf(&b, "http_requests_total{path=%q,status=\"%d\"} %d\n",
			k.path, k.status, c.httpRequests[k])
	}

	b.WriteString("# HELP webhook_requests_total Total webhook processing outcomes\n")
	b.WriteString("# TYPE webhook_requests_total counter\n")
	results := make([]string, 0, len(c.ingestResults))
	for r := range c.ingestResults {
		results = append(results, string(r))
	}
	sort.Strings(results)
	for _, r := range results {
		fmt.Fprintf(&b, "webhook_requests_total{result=%q} %d\n",
			r, c.ingestResults[IngestResult(r)])
	}

	b.WriteString("# HELP request_latency_ms Request latency in milliseconds\n")
	b.WriteString("# TYPE request_latency_ms histogram\n")
	for i, bound := range latencyBuckets {
		fmt.Fprintf(&b, "request_latency_ms_bucket{le=\"%d\"} %d\n",
			int(bound), c.bucketCounts[i])
	}
	fmt.Fprintf(&b, "request_latency_ms_bucket{le=\"+Inf\"} %d\n", c.infCount)
	fmt.Fprintf(&b, "request_latency_ms_sum %g\n", c.latencySum)
	fmt.Fprintf(&b, "request_latency_ms_count %d\n", c.latencyCount)

	return b.String()
}
