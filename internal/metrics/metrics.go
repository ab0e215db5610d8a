package metrics

import (
	"sync"
	"time"
)

// Metrics tracks per-process pipeline counters. A single global instance is
// shared between the pipeline and the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsFetched        int64
	ItemsKept           int64
	DuplicatesFiltered  int64
	SummariesGenerated  int64
	SummaryFallbacks    int64
	NotificationsSent   int64
	NotificationsFailed int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsFetched += int64(n)
}

func (m *Metrics) SetItemsKept(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsKept = int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementSummariesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
}

func (m *Metrics) IncrementSummaryFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryFallbacks++
}

func (m *Metrics) IncrementNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSent++
}

func (m *Metrics) IncrementNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsFailed++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_fetched":        m.ItemsFetched,
		"items_kept":           m.ItemsKept,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"summaries_generated":  m.SummariesGenerated,
		"summary_fallbacks":    m.SummaryFallbacks,
		"notifications_sent":   m.NotificationsSent,
		"notifications_failed": m.NotificationsFailed,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
