package observability

import (
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for pipeline runs.
type Metrics struct {
	mu       sync.Mutex
	runCount map[string]int64
	outcomes map[string]int64
	lastRun  map[string]time.Time
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		runCount: make(map[string]int64),
		outcomes: make(map[string]int64),
		lastRun:  make(map[string]time.Time),
	}
}

// RecordRun increments the run counter for a pipeline.
func (m *Metrics) RecordRun(pipeline string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount[pipeline]++
	m.lastRun[pipeline] = time.Now()
}

// RecordOutcome increments a per-ticket outcome counter, keyed by
// pipeline and outcome name (assigned, skipped, automated, failed, ...).
func (m *Metrics) RecordOutcome(pipeline, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[pipeline+"|"+outcome]++
}

// Snapshot returns a copy of all counters for reporting.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.runCount)+len(m.outcomes))
	for pipeline, count := range m.runCount {
		out["runs|"+pipeline] = count
	}
	for key, count := range m.outcomes {
		out[key] = count
	}
	return out
}
