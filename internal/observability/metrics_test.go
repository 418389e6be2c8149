package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/staff/analytics/report", "GET", 200, time.Millisecond)
		}()
	}
	wg.Wait()
	m.RecordError("/staff/analytics/report", "GET", "VALIDATION_FAILED")
	m.RecordReport("Good", false)
	m.RecordReport("Good", true)

	snap := m.Snapshot()
	assert.Equal(t, int64(20), snap.Requests["/staff/analytics/report|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/staff/analytics/report|GET|VALIDATION_FAILED"])
	assert.Equal(t, int64(1), snap.ReportsByGrade["Good"])
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
	assert.InDelta(t, 1.0, snap.AvgLatencyMs["/staff/analytics/report|GET|200"], 1e-9)
}

func TestMetricsAverageLatency(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/health/live", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/health/live", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/health/ready", "GET", 503, 4*time.Millisecond)

	snap := m.Snapshot()
	assert.InDelta(t, 20.0, snap.AvgLatencyMs["/health/live|GET|200"], 1e-9)
	assert.InDelta(t, 4.0, snap.AvgLatencyMs["/health/ready|GET|503"], 1e-9)
	assert.Len(t, snap.AvgLatencyMs, 2)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	m.RecordReport("Good", false)
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
