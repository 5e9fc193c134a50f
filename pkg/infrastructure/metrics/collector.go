// Package metrics records per-run statement metrics and writes them out as a
// Prometheus textfile.
package metrics

import (
	"sync"
	"time"
)

// Collector records metrics keyed by name and alternating label name/value
// pairs, e.g. IncrementCounter("azquery_statements_total", "kind", "mutating").
type Collector interface {
	IncrementCounter(name string, labels ...string)
	RecordHistogram(name string, value float64, labels ...string)
	RecordGauge(name string, value float64, labels ...string)

	// StartTimer begins timing one operation. Stopping the timer observes the
	// elapsed seconds in the named histogram under labels.
	StartTimer(name string, labels ...string) Timer

	// WriteTextfile dumps every collected metric to path in the Prometheus
	// text exposition format.
	WriteTextfile(path string) error
}

// Timer measures one operation.
type Timer interface {
	// Stop returns the elapsed seconds. Only the first call records.
	Stop() float64
}

type stopwatch struct {
	once    sync.Once
	start   time.Time
	elapsed float64
	record  func(seconds float64)
}

func newStopwatch(record func(seconds float64)) *stopwatch {
	return &stopwatch{start: time.Now(), record: record}
}

func (s *stopwatch) Stop() float64 {
	s.once.Do(func() {
		s.elapsed = time.Since(s.start).Seconds()
		if s.record != nil {
			s.record(s.elapsed)
		}
	})
	return s.elapsed
}

// discard is used when the run has no metrics file. Timers still measure so
// callers can report execution time.
type discard struct{}

// NewNoOpCollector returns a collector that drops every metric.
func NewNoOpCollector() Collector {
	return discard{}
}

func (discard) IncrementCounter(string, ...string) {}
func (discard) RecordHistogram(string, float64, ...string) {}
func (discard) RecordGauge(string, float64, ...string) {}
func (discard) StartTimer(string, ...string) Timer { return newStopwatch(nil) }
func (discard) WriteTextfile(string) error { return nil }
