// Package stats provides an in-process MetricsSink recording distribution
// samples emitted by analyzer executions
package stats

import (
	"sync"
	"time"
)

// DistributionSummary summarizes the samples recorded for one
// distribution-valued metric
type DistributionSummary struct {
	Count int64
	Sum   int64
	Min   int64
	Max   int64
}

// RunStatistics records observability samples from analyzer executions. The
// zero value is not usable; construct with CreateRunStatistics. All methods
// are safe for concurrent use and never block on I/O.
type RunStatistics struct {
	lock          sync.Mutex
	started       bool
	startTime     time.Time
	totalRuntime  int64
	distributions map[string]*DistributionSummary
}

// CreateRunStatistics is a factory for RunStatistics
func CreateRunStatistics() *RunStatistics {
	return &RunStatistics{distributions: make(map[string]*DistributionSummary)}
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime).Nanoseconds()
}

// GetRuntime returns the recorded total runtime
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return time.Duration(rs.totalRuntime)
}

// Distribution records one sample of a distribution-valued metric
func (rs *RunStatistics) Distribution(name string, sample int64) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	d, ok := rs.distributions[name]
	if !ok {
		d = &DistributionSummary{Min: sample, Max: sample}
		rs.distributions[name] = d
	}
	d.Count++
	d.Sum += sample
	if sample < d.Min {
		d.Min = sample
	}
	if sample > d.Max {
		d.Max = sample
	}
}

// GetDistribution returns a copy of the recorded summary for a metric, and
// whether any samples were recorded for it
func (rs *RunStatistics) GetDistribution(name string) (DistributionSummary, bool) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	d, ok := rs.distributions[name]
	if !ok {
		return DistributionSummary{}, false
	}
	return *d, true
}
