package bptree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring
// systems like Prometheus.
//
// Collectors may be read from other goroutines while a single mutator
// drives the tree, so implementations should use atomic counters.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordSearch is called after each Find operation. strategy is the
	// path actually taken, found reports whether the key was present.
	RecordSearch(strategy Strategy, duration time.Duration, found bool)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, removed bool)

	// RecordSplit is called once per node split; leaf distinguishes
	// leaf splits from internal splits.
	RecordSplit(leaf bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)          {}
func (NoopMetricsCollector) RecordSearch(Strategy, time.Duration, bool) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)           {}
func (NoopMetricsCollector) RecordSplit(bool)                           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64

	SearchCount      atomic.Int64
	SearchHits       atomic.Int64
	SearchTotalNanos atomic.Int64

	RemoveCount atomic.Int64
	RemoveHits  atomic.Int64

	LeafSplits     atomic.Int64
	InternalSplits atomic.Int64
}

func (c *BasicMetricsCollector) RecordInsert(d time.Duration, err error) {
	c.InsertCount.Add(1)
	c.InsertTotalNanos.Add(int64(d))
	if err != nil {
		c.InsertErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSearch(_ Strategy, d time.Duration, found bool) {
	c.SearchCount.Add(1)
	c.SearchTotalNanos.Add(int64(d))
	if found {
		c.SearchHits.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordRemove(_ time.Duration, removed bool) {
	c.RemoveCount.Add(1)
	if removed {
		c.RemoveHits.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordSplit(leaf bool) {
	if leaf {
		c.LeafSplits.Add(1)
	} else {
		c.InternalSplits.Add(1)
	}
}

// AverageInsertLatency returns the mean insert latency so far.
func (c *BasicMetricsCollector) AverageInsertLatency() time.Duration {
	n := c.InsertCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(c.InsertTotalNanos.Load() / n)
}

// AverageSearchLatency returns the mean Find latency so far.
func (c *BasicMetricsCollector) AverageSearchLatency() time.Duration {
	n := c.SearchCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(c.SearchTotalNanos.Load() / n)
}
