package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	errorCount     map[string]int64
	requestLatency map[string]time.Duration
	reportsByGrade map[string]int64
	cacheHits      int64
	cacheMisses    int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests       map[string]int64   `json:"requests"`
	Errors         map[string]int64   `json:"errors"`
	// AvgLatencyMs is the mean request latency per route key, in milliseconds.
	AvgLatencyMs   map[string]float64 `json:"avg_latency_ms"`
	ReportsByGrade map[string]int64   `json:"reports_by_grade"`
	CacheHits      int64              `json:"cache_hits"`
	CacheMisses    int64              `json:"cache_misses"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		requestLatency: make(map[string]time.Duration),
		reportsByGrade: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordReport counts a generated report by grade and cache outcome.
func (m *Metrics) RecordReport(grade string, cached bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached {
		m.cacheHits++
		return
	}
	m.cacheMisses++
	m.reportsByGrade[grade]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Requests:       copyCounts(m.requestCount),
		Errors:         copyCounts(m.errorCount),
		AvgLatencyMs:   averageLatency(m.requestLatency, m.requestCount),
		ReportsByGrade: copyCounts(m.reportsByGrade),
		CacheHits:      m.cacheHits,
		CacheMisses:    m.cacheMisses,
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func averageLatency(total map[string]time.Duration, count map[string]int64) map[string]float64 {
	avg := make(map[string]float64, len(total))
	for k, d := range total {
		if n := count[k]; n > 0 {
			avg[k] = float64(d) / float64(time.Millisecond) / float64(n)
		}
	}
	return avg
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
