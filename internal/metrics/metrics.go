// Package metrics provides metrics collection for the leftover scanner.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector collects and aggregates scan metrics.
type Collector struct {
	// Counters
	requestsTotal      atomic.Int64
	errorsTotal        atomic.Int64
	candidatesTotal    atomic.Int64
	probesCompleted    atomic.Int64
	findingsTotal      atomic.Int64
	falsePositives     atomic.Int64
	baselineRejections atomic.Int64
	cacheHits          atomic.Int64
	cacheMisses        atomic.Int64
	bytesTotal         atomic.Int64
	truncatedBodies    atomic.Int64

	// Rate tracking
	requestsInWindow atomic.Int64
	errorsInWindow   atomic.Int64
	windowStart      atomic.Int64

	// Response time tracking
	responseTimesSum atomic.Int64
	responseTimesNum atomic.Int64

	// Gauges
	queueDepth        atomic.Int64
	activeWorkers     atomic.Int64
	concurrencyTarget atomic.Int64

	// Histograms (buckets for response times in ms)
	responseTimeBuckets [10]atomic.Int64 // <10, <50, <100, <250, <500, <1000, <2500, <5000, <10000, >=10000

	// Error breakdown
	errorCounts map[string]*atomic.Int64
	errorMu     sync.RWMutex

	// Status code breakdown
	statusCodes map[int]*atomic.Int64
	statusMu    sync.RWMutex

	// Start time
	startTime time.Time
}

// New creates a new metrics collector.
func New() *Collector {
	now := time.Now()
	c := &Collector{
		errorCounts: make(map[string]*atomic.Int64),
		statusCodes: make(map[int]*atomic.Int64),
		startTime:   now,
	}
	c.windowStart.Store(now.UnixNano())
	return c
}

// RecordRequest records an HTTP request.
func (c *Collector) RecordRequest() {
	c.requestsTotal.Add(1)
	c.requestsInWindow.Add(1)
}

// RecordError records an error.
func (c *Collector) RecordError(errorType string) {
	c.errorsTotal.Add(1)
	c.errorsInWindow.Add(1)

	c.errorMu.Lock()
	if c.errorCounts[errorType] == nil {
		c.errorCounts[errorType] = &atomic.Int64{}
	}
	c.errorCounts[errorType].Add(1)
	c.errorMu.Unlock()
}

// RecordResponseTime records a response time.
func (c *Collector) RecordResponseTime(d time.Duration) {
	ms := d.Milliseconds()
	c.responseTimesSum.Add(ms)
	c.responseTimesNum.Add(1)

	// Update histogram bucket
	bucket := c.getBucket(ms)
	c.responseTimeBuckets[bucket].Add(1)
}

// getBucket returns the histogram bucket for a given response time.
func (c *Collector) getBucket(ms int64) int {
	switch {
	case ms < 10:
		return 0
	case ms < 50:
		return 1
	case ms < 100:
		return 2
	case ms < 250:
		return 3
	case ms < 500:
		return 4
	case ms < 1000:
		return 5
	case ms < 2500:
		return 6
	case ms < 5000:
		return 7
	case ms < 10000:
		return 8
	default:
		return 9
	}
}

// RecordStatusCode records an HTTP status code.
func (c *Collector) RecordStatusCode(code int) {
	c.statusMu.Lock()
	if c.statusCodes[code] == nil {
		c.statusCodes[code] = &atomic.Int64{}
	}
	c.statusCodes[code].Add(1)
	c.statusMu.Unlock()
}

// RecordCandidates records generated candidate URLs.
func (c *Collector) RecordCandidates(n int64) {
	c.candidatesTotal.Add(n)
}

// RecordProbeCompleted increments completed probes.
func (c *Collector) RecordProbeCompleted() {
	c.probesCompleted.Add(1)
}

// RecordFinding increments confirmed findings.
func (c *Collector) RecordFinding() {
	c.findingsTotal.Add(1)
}

// RecordFalsePositive increments rejected responses that looked like hits.
func (c *Collector) RecordFalsePositive() {
	c.falsePositives.Add(1)
}

// RecordBaselineRejection increments responses matching the target baseline.
func (c *Collector) RecordBaselineRejection() {
	c.baselineRejections.Add(1)
}

// RecordCacheHit increments fingerprint cache hits.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Add(1)
}

// RecordCacheMiss increments fingerprint cache misses.
func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Add(1)
}

// RecordBytes records transferred bytes.
func (c *Collector) RecordBytes(n int64) {
	c.bytesTotal.Add(n)
}

// RecordTruncatedBody increments responses cut off at the size cap.
func (c *Collector) RecordTruncatedBody() {
	c.truncatedBodies.Add(1)
}

// SetQueueDepth sets the current queue depth.
func (c *Collector) SetQueueDepth(depth int64) {
	c.queueDepth.Store(depth)
}

// SetActiveWorkers sets the number of active workers.
func (c *Collector) SetActiveWorkers(n int64) {
	c.activeWorkers.Store(n)
}

// SetConcurrencyTarget sets the adaptive concurrency target.
func (c *Collector) SetConcurrencyTarget(n int64) {
	c.concurrencyTarget.Store(n)
}

// GetRequestsPerSecond returns the current requests per second rate.
func (c *Collector) GetRequestsPerSecond() float64 {
	return c.getRatePerSecond(&c.requestsInWindow)
}

// GetErrorsPerSecond returns the current errors per second rate.
func (c *Collector) GetErrorsPerSecond() float64 {
	return c.getRatePerSecond(&c.errorsInWindow)
}

// getRatePerSecond calculates rate per second with window rotation.
func (c *Collector) getRatePerSecond(counter *atomic.Int64) float64 {
	windowDuration := time.Duration(10) * time.Second
	now := time.Now().UnixNano()
	windowStart := c.windowStart.Load()

	elapsed := time.Duration(now - windowStart)
	if elapsed >= windowDuration {
		// Rotate window
		if c.windowStart.CompareAndSwap(windowStart, now) {
			c.requestsInWindow.Store(0)
			c.errorsInWindow.Store(0)
		}
		return 0
	}

	count := counter.Load()
	if elapsed <= 0 {
		return 0
	}

	return float64(count) / elapsed.Seconds()
}

// GetAverageResponseTime returns the average response time.
func (c *Collector) GetAverageResponseTime() time.Duration {
	sum := c.responseTimesSum.Load()
	num := c.responseTimesNum.Load()
	if num == 0 {
		return 0
	}
	return time.Duration(sum/num) * time.Millisecond
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() *Snapshot {
	s := &Snapshot{
		Timestamp:           time.Now(),
		Uptime:              time.Since(c.startTime),
		RequestsTotal:       c.requestsTotal.Load(),
		ErrorsTotal:         c.errorsTotal.Load(),
		CandidatesTotal:     c.candidatesTotal.Load(),
		ProbesCompleted:     c.probesCompleted.Load(),
		FindingsTotal:       c.findingsTotal.Load(),
		FalsePositives:      c.falsePositives.Load(),
		BaselineRejections:  c.baselineRejections.Load(),
		CacheHits:           c.cacheHits.Load(),
		CacheMisses:         c.cacheMisses.Load(),
		BytesTotal:          c.bytesTotal.Load(),
		TruncatedBodies:     c.truncatedBodies.Load(),
		QueueDepth:          c.queueDepth.Load(),
		ActiveWorkers:       c.activeWorkers.Load(),
		ConcurrencyTarget:   c.concurrencyTarget.Load(),
		RequestsPerSecond:   c.GetRequestsPerSecond(),
		ErrorsPerSecond:     c.GetErrorsPerSecond(),
		AverageResponseTime: c.GetAverageResponseTime(),
		ErrorCounts:         make(map[string]int64),
		StatusCodes:         make(map[int]int64),
		ResponseTimeHist:    make([]int64, 10),
	}

	// Copy error counts
	c.errorMu.RLock()
	for k, v := range c.errorCounts {
		s.ErrorCounts[k] = v.Load()
	}
	c.errorMu.RUnlock()

	// Copy status codes
	c.statusMu.RLock()
	for k, v := range c.statusCodes {
		s.StatusCodes[k] = v.Load()
	}
	c.statusMu.RUnlock()

	// Copy histogram
	for i := 0; i < 10; i++ {
		s.ResponseTimeHist[i] = c.responseTimeBuckets[i].Load()
	}

	return s
}

// Reset resets all metrics.
func (c *Collector) Reset() {
	c.requestsTotal.Store(0)
	c.errorsTotal.Store(0)
	c.candidatesTotal.Store(0)
	c.probesCompleted.Store(0)
	c.findingsTotal.Store(0)
	c.falsePositives.Store(0)
	c.baselineRejections.Store(0)
	c.cacheHits.Store(0)
	c.cacheMisses.Store(0)
	c.bytesTotal.Store(0)
	c.truncatedBodies.Store(0)
	c.requestsInWindow.Store(0)
	c.errorsInWindow.Store(0)
	c.responseTimesSum.Store(0)
	c.responseTimesNum.Store(0)
	c.queueDepth.Store(0)
	c.activeWorkers.Store(0)
	c.concurrencyTarget.Store(0)

	for i := 0; i < 10; i++ {
		c.responseTimeBuckets[i].Store(0)
	}

	c.errorMu.Lock()
	c.errorCounts = make(map[string]*atomic.Int64)
	c.errorMu.Unlock()

	c.statusMu.Lock()
	c.statusCodes = make(map[int]*atomic.Int64)
	c.statusMu.Unlock()

	c.windowStart.Store(time.Now().UnixNano())
	c.startTime = time.Now()
}

// Snapshot represents a point-in-time view of metrics.
type Snapshot struct {
	Timestamp           time.Time        `json:"timestamp"`
	Uptime              time.Duration    `json:"uptime"`
	RequestsTotal       int64            `json:"requests_total"`
	ErrorsTotal         int64            `json:"errors_total"`
	CandidatesTotal     int64            `json:"candidates_total"`
	ProbesCompleted     int64            `json:"probes_completed"`
	FindingsTotal       int64            `json:"findings_total"`
	FalsePositives      int64            `json:"false_positives_rejected"`
	BaselineRejections  int64            `json:"baseline_rejections"`
	CacheHits           int64            `json:"cache_hits"`
	CacheMisses         int64            `json:"cache_misses"`
	BytesTotal          int64            `json:"bytes_total"`
	TruncatedBodies     int64            `json:"truncated_bodies"`
	QueueDepth          int64            `json:"queue_depth"`
	ActiveWorkers       int64            `json:"active_workers"`
	ConcurrencyTarget   int64            `json:"concurrency_target"`
	RequestsPerSecond   float64          `json:"requests_per_second"`
	ErrorsPerSecond     float64          `json:"errors_per_second"`
	AverageResponseTime time.Duration    `json:"average_response_time"`
	ErrorCounts         map[string]int64 `json:"error_counts"`
	StatusCodes         map[int]int64    `json:"status_codes"`
	ResponseTimeHist    []int64          `json:"response_time_histogram"`
}

// ErrorRate returns the error rate (errors/requests).
func (s *Snapshot) ErrorRate() float64 {
	if s.RequestsTotal == 0 {
		return 0
	}
	return float64(s.ErrorsTotal) / float64(s.RequestsTotal)
}

// CacheHitRate returns the fingerprint cache hit rate (0-1).
func (s *Snapshot) CacheHitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// Summary returns a human-readable summary.
func (s *Snapshot) Summary() map[string]interface{} {
	return map[string]interface{}{
		"uptime":               s.Uptime.String(),
		"requests_total":       s.RequestsTotal,
		"errors_total":         s.ErrorsTotal,
		"error_rate":           s.ErrorRate(),
		"candidates_total":     s.CandidatesTotal,
		"findings_total":       s.FindingsTotal,
		"false_positives":      s.FalsePositives,
		"baseline_rejections":  s.BaselineRejections,
		"cache_hit_rate":       s.CacheHitRate(),
		"queue_depth":          s.QueueDepth,
		"active_workers":       s.ActiveWorkers,
		"concurrency_target":   s.ConcurrencyTarget,
		"requests_per_second":  s.RequestsPerSecond,
		"avg_response_time_ms": s.AverageResponseTime.Milliseconds(),
	}
}

// Global metrics collector.
var globalCollector = New()

// SetGlobal sets the global metrics collector.
func SetGlobal(c *Collector) {
	globalCollector = c
}

// Global returns the global metrics collector.
func Global() *Collector {
	return globalCollector
}
