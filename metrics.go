package bigarray

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// The grow/trim hooks double as a reallocation probe: tests assert that a
// properly sized array performs no further growth.
type MetricsCollector interface {
	// RecordGrow is called after each capacity growth.
	RecordGrow(oldCap, newCap uint64)

	// RecordTrim is called after each capacity trim.
	RecordTrim(oldCap, newCap uint64)

	// RecordSnapshotSave is called after each snapshot save.
	// count is the number of elements written, err is nil if successful.
	RecordSnapshotSave(count uint64, duration time.Duration, err error)

	// RecordSnapshotLoad is called after each snapshot load.
	RecordSnapshotLoad(count uint64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(uint64, uint64)                          {}
func (NoopMetricsCollector) RecordTrim(uint64, uint64)                          {}
func (NoopMetricsCollector) RecordSnapshotSave(uint64, time.Duration, error)    {}
func (NoopMetricsCollector) RecordSnapshotLoad(uint64, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	GrowCount          atomic.Int64
	GrowSlots          atomic.Int64
	TrimCount          atomic.Int64
	SnapshotSaveCount  atomic.Int64
	SnapshotSaveErrors atomic.Int64
	SnapshotSaveNanos  atomic.Int64
	SnapshotLoadCount  atomic.Int64
	SnapshotLoadErrors atomic.Int64
	SnapshotLoadNanos  atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap uint64) {
	b.GrowCount.Add(1)
	b.GrowSlots.Add(int64(newCap - oldCap))
}

// RecordTrim implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrim(oldCap, newCap uint64) {
	b.TrimCount.Add(1)
}

// RecordSnapshotSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotSave(count uint64, duration time.Duration, err error) {
	b.SnapshotSaveCount.Add(1)
	b.SnapshotSaveNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotSaveErrors.Add(1)
	}
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(count uint64, duration time.Duration, err error) {
	b.SnapshotLoadCount.Add(1)
	b.SnapshotLoadNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotLoadErrors.Add(1)
	}
}
