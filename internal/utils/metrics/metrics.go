package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// Metrics aggregates timings of index-construction jobs.
type Metrics struct {
	mu                 sync.Mutex
	totalBuilds        int
	successfulBuilds   int
	failedBuilds       int
	totalExecutionTime time.Duration
	executionCount     int
}

func (m *Metrics) RecordSuccess(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalBuilds++
	m.successfulBuilds++
	m.totalExecutionTime += duration
	m.executionCount++
}

func (m *Metrics) RecordFailure(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalBuilds++
	m.failedBuilds++
	m.totalExecutionTime += duration
	m.executionCount++
}

func (m *Metrics) PrintMetrics(log *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()

	avgExecTime := time.Duration(0)
	if m.executionCount > 0 {
		avgExecTime = m.totalExecutionTime / time.Duration(m.executionCount)
	}

	log.Info("Index build metrics",
		"Total Builds", m.totalBuilds,
		"Successful Builds", m.successfulBuilds,
		"Failed Builds", m.failedBuilds,
		"Avg Build Time", avgExecTime,
	)
}
